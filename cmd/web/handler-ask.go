package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/snapsolve/internal/answer"
	"github.com/myrjola/snapsolve/internal/errors"
	"github.com/myrjola/snapsolve/internal/submit"
)

// maxImageBytes bounds the multipart submission. Photographs of questions
// compress well below this.
const maxImageBytes = 10 << 20

// ask is the wire contract for native clients. It accepts a multipart
// submission with an "image" file and a "question" field and always answers
// HTTP 200 with an answer result once the submission itself is well-formed.
// Engine failures map to the error result with the fixed failure message so
// that clients have a single shape to handle.
func (app *application) ask(w http.ResponseWriter, r *http.Request) {
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

	app.writeJSON(w, r, http.StatusOK, result)
}

// imageSubmission parses the multipart form and returns the image bytes with
// their sniffed media type. It writes the client error response itself and
// reports ok=false when the submission is malformed.
func (app *application) imageSubmission(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return nil, "", false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return nil, "", false
	}
	defer func() {
		_ = file.Close()
	}()

	image, err := readAllLimited(file, maxImageBytes)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "read image"))
		return nil, "", false
	}
	if len(image) == 0 {
		app.clientError(w, r, http.StatusBadRequest)
		return nil, "", false
	}

	mimeType := http.DetectContentType(image)
	if !isImageMIMEType(mimeType) {
		app.clientError(w, r, http.StatusUnsupportedMediaType)
		return nil, "", false
	}

	return image, mimeType, true
}
