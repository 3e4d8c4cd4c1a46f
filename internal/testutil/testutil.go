// Package testutil provides an in-memory note store and a fake Joplin Data
// API server for tests.
package testutil

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/starford/randomnote/internal/apperr"
	"github.com/starford/randomnote/internal/models"
)

// NoteStore is an in-memory paginated note store. The global listing holds
// every note added through Add; notebook listings hold the notes added to
// that notebook.
type NoteStore struct {
	mu        sync.Mutex
	all       []models.Note
	notebooks map[string][]models.Note
	titles    map[string]string
	failing   map[string]error
	requests  []string
}

// NewNoteStore returns an empty store.
func NewNoteStore() *NoteStore {
	return &NoteStore{
		notebooks: make(map[string][]models.Note),
		titles:    make(map[string]string),
		failing:   make(map[string]error),
	}
}

// Add adds notes to the global listing and, if notebookID is non-empty, to
// that notebook.
func (s *NoteStore) Add(notebookID string, notes ...models.Note) *NoteStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append(s.all, notes...)
	if notebookID != "" {
		s.notebooks[notebookID] = append(s.notebooks[notebookID], notes...)
		if _, ok := s.titles[notebookID]; !ok {
			s.titles[notebookID] = notebookID
		}
	}
	return s
}

// AddNotebook registers an empty notebook with a title.
func (s *NoteStore) AddNotebook(id, title string) *NoteStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles[id] = title
	if _, ok := s.notebooks[id]; !ok {
		s.notebooks[id] = []models.Note{}
	}
	return s
}

// Fail makes every listing of path return err.
func (s *NoteStore) Fail(path string, err error) *NoteStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[path] = err
	return s
}

// Requests returns "path?page=N" for every List call so far.
func (s *NoteStore) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// List implements selector.Source.
func (s *NoteStore) List(_ context.Context, path []string, q models.Query) (models.Page[models.Note], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.Join(path, "/")
	s.requests = append(s.requests, fmt.Sprintf("%s?page=%d", key, q.Page))
	if err := s.failing[key]; err != nil {
		return models.Page[models.Note]{}, err
	}

	var items []models.Note
	switch {
	case len(path) == 1 && path[0] == "notes":
		items = s.all
	case len(path) == 3 && path[0] == "folders" && path[2] == "notes":
		nb, ok := s.notebooks[path[1]]
		if !ok {
			return models.Page[models.Note]{}, fmt.Errorf("folder %s: %w", path[1], apperr.ErrNotFound)
		}
		items = nb
	default:
		return models.Page[models.Note]{}, fmt.Errorf("unknown path %q: %w", key, apperr.ErrNotFound)
	}
	return page(items, q), nil
}

// Notebooks returns every registered notebook.
func (s *NoteStore) Notebooks() []models.Notebook {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notebook, 0, len(s.titles))
	for id, title := range s.titles {
		out = append(out, models.Notebook{ID: id, Title: title})
	}
	slices.SortFunc(out, func(a, b models.Notebook) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func page[T any](items []T, q models.Query) models.Page[T] {
	limit := q.Limit
	if limit <= 0 {
		limit = models.PageSize
	}
	pageNum := max(q.Page, 1)
	start := (pageNum - 1) * limit
	if start >= len(items) {
		return models.Page[T]{Items: []T{}}
	}
	end := min(start+limit, len(items))
	return models.Page[T]{Items: append([]T(nil), items[start:end]...), HasMore: end < len(items)}
}

// Notes builds plain notes from ids.
func Notes(ids ...string) []models.Note {
	out := make([]models.Note, len(ids))
	for i, id := range ids {
		out[i] = models.Note{ID: id}
	}
	return out
}

// FixedRand returns the same value on every draw.
type FixedRand float64

// Float64 implements selector.Rand.
func (f FixedRand) Float64() float64 { return float64(f) }

// SeqRand cycles through a fixed list of draws.
type SeqRand struct {
	mu     sync.Mutex
	values []float64
	i      int
}

// NewSeqRand returns a SeqRand over values.
func NewSeqRand(values ...float64) *SeqRand {
	return &SeqRand{values: values}
}

// Float64 implements selector.Rand.
func (r *SeqRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}
