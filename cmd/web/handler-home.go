package main

import (
	"net/http"

	"github.com/myrjola/snapsolve/internal/present"
)

type homeTemplateData struct {
	BaseTemplateData

	// Presentation is nil until a question has been solved.
	Presentation *present.Presentation
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Presentation:     nil,
	}

	app.render(w, r, http.StatusOK, "home", data)
}
