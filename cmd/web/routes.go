package main

import (
	"net/http"
	"time"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	fileServer := http.FileServer(http.Dir("./ui/static/"))
	mux.Handle("GET /static/", alice.New(cacheForeverHeaders).Then(http.StripPrefix("/static", fileServer)))

	pageTimeout := 5 * time.Second //nolint:mnd // 5 seconds
	pages := alice.New(func(h http.Handler) http.Handler {
		return timeoutHandler(h, pageTimeout)
	})

	mux.Handle("GET /{$}", pages.ThenFunc(app.home))
	mux.Handle("/", pages.ThenFunc(app.notFound))

	// The answering handlers run without the page timeout since the engine can
	// take up to the server write timeout to respond.
	mux.Handle("POST /ask", http.HandlerFunc(app.ask))
	mux.Handle("POST /solve", http.HandlerFunc(app.solve))

	mux.Handle("GET /api/healthy", http.HandlerFunc(app.healthy))

	return alice.New(
		app.recoverPanic,
		app.logRequest,
		secureHeaders,
		noSurf,
		app.commonContext,
	).Then(mux)
}
