package selector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/randomnote/internal/apperr"
	"github.com/starford/randomnote/internal/models"
	"github.com/starford/randomnote/internal/paginate"
)

// Scope returns the candidate notes. With no root notebooks every note in
// the store is a candidate and a listing failure is returned. Otherwise the
// notes of each root notebook are concatenated; a notebook that fails to
// list is logged and skipped. A note reachable from several root notebooks
// appears once per notebook.
func (s *Selector) Scope(ctx context.Context, roots []string) ([]models.Note, error) {
	if len(roots) == 0 {
		notes, err := s.listAll(ctx, []string{"notes"})
		if err != nil {
			return nil, fmt.Errorf("selector: list notes: %w: %w", apperr.ErrUpstream, err)
		}
		return notes, nil
	}

	out := []models.Note{}
	for _, id := range roots {
		notes, err := s.listAll(ctx, notebookNotesPath(id))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("selector: skipping root notebook",
				slog.String("notebook_id", id),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, notes...)
	}
	return out, nil
}

func (s *Selector) listAll(ctx context.Context, path []string) ([]models.Note, error) {
	return paginate.Collect(ctx, noteFields, func(ctx context.Context, q models.Query) (models.Page[models.Note], error) {
		return s.source.List(ctx, path, q)
	})
}

func notebookNotesPath(id string) []string {
	return []string{"folders", id, "notes"}
}
