package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/randomnote/internal/apperr"
	"github.com/starford/randomnote/internal/commands"
	"github.com/starford/randomnote/internal/settings"
	"github.com/starford/randomnote/internal/sse"
)

// Handler holds API route handlers.
type Handler struct {
	svc *commands.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *commands.Service) *Handler {
	return &Handler{svc: svc}
}

// OpenRandomNote handles POST /actions/open-random-note.
func (h *Handler) OpenRandomNote(w http.ResponseWriter, r *http.Request) {
	var req OpenRandomNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	res, err := h.svc.OpenRandomNote(r.Context(), req.Selected)
	if err != nil {
		writeError(w, "open random note", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ExcludeNotes handles POST /actions/exclude-notes.
func (h *Handler) ExcludeNotes(w http.ResponseWriter, r *http.Request) {
	var req ExcludeNotesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	ids, err := h.svc.ExcludeNotes(r.Context(), req.IDs...)
	if err != nil {
		writeError(w, "exclude notes", err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Setting: settings.KeyExcludedNotes, IDs: ids})
}

// ExcludeNotebook handles POST /actions/exclude-notebook.
func (h *Handler) ExcludeNotebook(w http.ResponseWriter, r *http.Request) {
	var req NotebookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	ids, err := h.svc.ExcludeNotebook(r.Context(), req.ID)
	if err != nil {
		writeError(w, "exclude notebook", err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Setting: settings.KeyExcludedNotebooks, IDs: ids})
}

// AddRootNotebook handles POST /actions/add-root-notebook.
func (h *Handler) AddRootNotebook(w http.ResponseWriter, r *http.Request) {
	var req NotebookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	ids, err := h.svc.AddRootNotebook(r.Context(), req.ID)
	if err != nil {
		writeError(w, "add root notebook", err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Setting: settings.KeyRootNotebooks, IDs: ids})
}

// Settings handles GET /settings.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Settings(r.Context())
	if err != nil {
		writeError(w, "load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Bindings handles GET /bindings.
func (h *Handler) Bindings(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Bindings(r.Context())
	if err != nil {
		writeError(w, "resolve bindings", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrInvalidSetting):
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
	case errors.Is(err, sse.ErrNoClients):
		writeJSON(w, http.StatusConflict, errorBody("no editor connected"))
	case errors.Is(err, apperr.ErrUpstream):
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody(apperr.ErrUpstream.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
