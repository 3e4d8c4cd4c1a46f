// Package selector computes the set of notes eligible for random selection
// and picks one of them.
//
// Selection is a pure function of the note source, a Config resolved once
// per invocation, the current editor selection and a random draw:
//
//	scope (all notes or root notebooks)
//	  -> drop completed todos (optional)
//	  -> drop selected, excluded and excluded-notebook notes
//	  -> pick uniformly at random
package selector

import (
	"context"
	"log/slog"

	"github.com/starford/randomnote/internal/models"
)

// Fields requested for every note listing.
var noteFields = []string{"id", "is_todo", "todo_completed"}

// Source is a paginated note listing endpoint.
// Path is one of ["notes"] or ["folders", <id>, "notes"].
type Source interface {
	List(ctx context.Context, path []string, q models.Query) (models.Page[models.Note], error)
}

// Config is the selection configuration read once per invocation.
type Config struct {
	RootNotebooks         []string
	ExcludedNotes         []string
	ExcludedNotebooks     []string
	ExcludeCompletedTodos bool
}

// Selector ties a note source to a random source.
type Selector struct {
	source Source
	rand   Rand
	logger *slog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand overrides the random source.
func WithRand(r Rand) Option {
	return func(s *Selector) {
		s.rand = r
	}
}

// WithLogger sets the logger used for skipped notebooks and debug counts.
func WithLogger(l *slog.Logger) Option {
	return func(s *Selector) {
		s.logger = l
	}
}

// New creates a Selector over source.
func New(source Source, opts ...Option) *Selector {
	s := &Selector{
		source: source,
		rand:   defaultRand{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Eligible returns the notes a random pick may choose from.
func (s *Selector) Eligible(ctx context.Context, cfg Config, selected []string) ([]models.Note, error) {
	candidates, err := s.Scope(ctx, cfg.RootNotebooks)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("selector: candidates", slog.Int("count", len(candidates)))
	if len(candidates) == 0 {
		return candidates, nil
	}

	excluded, err := s.Excluded(ctx, selected, cfg.ExcludedNotes, cfg.ExcludedNotebooks)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("selector: excluding", slog.Int("count", len(excluded)))

	eligible := Filter(candidates, cfg.ExcludeCompletedTodos, excluded)
	s.logger.Debug("selector: eligible", slog.Int("count", len(eligible)))
	return eligible, nil
}

// Select resolves the eligible notes and picks one. ok is false when no
// note is eligible.
func (s *Selector) Select(ctx context.Context, cfg Config, selected []string) (note models.Note, ok bool, err error) {
	eligible, err := s.Eligible(ctx, cfg, selected)
	if err != nil {
		return models.Note{}, false, err
	}
	note, ok = Pick(eligible, s.rand)
	return note, ok, nil
}
