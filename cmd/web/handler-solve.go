package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/snapsolve/internal/answer"
	"github.com/myrjola/snapsolve/internal/errors"
	"github.com/myrjola/snapsolve/internal/submit"
)

// solve serves the browser form. It runs the same answering pipeline as the
// wire contract but responds with rendered markup: the full page for a plain
// form post and only the answer fragment for an htmx request.
func (app *application) solve(w http.ResponseWriter, r *http.Request) {
	image, mimeType, ok := app.imageSubmission(w, r)
	if !ok {
		return
	}

	question := r.FormValue("question")
	if question == "" {
		question = answer.QuestionPrompt
	}

	result, err := app.engine.Answer(r.Context(), image, mimeType, question)
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "answering failed",
			slog.String("engine", app.engine.Name()), errors.SlogError(err))
		result = answer.Result{
			Status: answer.StatusError,
			Answer: submit.FailureMessage,
		}
	}

	presentation := app.presenter.Present(result)
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Presentation:     &presentation,
	}

	h := app.htmx.NewHandler(w, r)
	if h.Request().HxRequest {
		app.renderPartial(w, r, http.StatusOK, "home", "answer", data)
		return
	}

	app.render(w, r, http.StatusOK, "home", data)
}
