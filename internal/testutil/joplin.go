package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/starford/randomnote/internal/apperr"
	"github.com/starford/randomnote/internal/models"
)

// JoplinServer starts an httptest server speaking the subset of the Joplin
// Data API used by the client, backed by store. Requests without the given
// token are rejected with 403, except /ping.
func JoplinServer(t *testing.T, store *NoteStore, token string) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Path != "/ping" && req.URL.Query().Get("token") != token {
				writeJoplinError(w, http.StatusForbidden, "Invalid \"token\" parameter")
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("JoplinClipperServer"))
	})
	r.Get("/notes", func(w http.ResponseWriter, req *http.Request) {
		serveNotes(w, req, store, []string{"notes"})
	})
	r.Get("/folders/{id}/notes", func(w http.ResponseWriter, req *http.Request) {
		serveNotes(w, req, store, []string{"folders", chi.URLParam(req, "id"), "notes"})
	})
	r.Get("/folders", func(w http.ResponseWriter, req *http.Request) {
		q := query(req)
		p := page(store.Notebooks(), q)
		writeJoplinJSON(w, p)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type joplinNote struct {
	ID            string `json:"id"`
	IsTodo        int    `json:"is_todo"`
	TodoCompleted int64  `json:"todo_completed"`
}

func serveNotes(w http.ResponseWriter, req *http.Request, store *NoteStore, path []string) {
	res, err := store.List(req.Context(), path, query(req))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJoplinError(w, http.StatusNotFound, "Not Found")
			return
		}
		writeJoplinError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := models.Page[joplinNote]{Items: make([]joplinNote, len(res.Items)), HasMore: res.HasMore}
	for i, n := range res.Items {
		jn := joplinNote{ID: n.ID}
		if n.IsTodo {
			jn.IsTodo = 1
		}
		if n.TodoCompleted {
			jn.TodoCompleted = 1700000000000
		}
		out.Items[i] = jn
	}
	writeJoplinJSON(w, out)
}

func query(req *http.Request) models.Query {
	v := req.URL.Query()
	p, _ := strconv.Atoi(v.Get("page"))
	l, _ := strconv.Atoi(v.Get("limit"))
	var fields []string
	if f := v.Get("fields"); f != "" {
		fields = strings.Split(f, ",")
	}
	return models.Query{Fields: fields, Page: p, Limit: l}
}

func writeJoplinJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJoplinError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
