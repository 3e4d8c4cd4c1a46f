package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/randomnote/internal/commands"
)

// NewRouter creates a chi router with all action routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *commands.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Route("/actions", func(r chi.Router) {
		r.Post("/open-random-note", h.OpenRandomNote)
		r.Post("/exclude-notes", h.ExcludeNotes)
		r.Post("/exclude-notebook", h.ExcludeNotebook)
		r.Post("/add-root-notebook", h.AddRootNotebook)
	})

	r.Get("/settings", h.Settings)
	r.Get("/bindings", h.Bindings)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
