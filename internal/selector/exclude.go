package selector

import (
	"context"
	"log/slog"
)

// Set is a set of note identifiers.
type Set map[string]struct{}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Excluded returns the union of the selected notes, the explicitly excluded
// notes and every note of the excluded notebooks. A notebook that fails to
// list contributes nothing and is logged.
func (s *Selector) Excluded(ctx context.Context, selected, notes, notebooks []string) (Set, error) {
	out := make(Set, len(selected)+len(notes))
	out.add(selected...)
	out.add(notes...)

	for _, id := range notebooks {
		inNotebook, err := s.listAll(ctx, notebookNotesPath(id))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("selector: skipping excluded notebook",
				slog.String("notebook_id", id),
				slog.String("error", err.Error()))
			continue
		}
		for _, n := range inNotebook {
			out.add(n.ID)
		}
	}
	return out, nil
}
