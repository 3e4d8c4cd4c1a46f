package selector

import "github.com/starford/randomnote/internal/models"

// Filter drops completed todos when excludeCompletedTodos is set, then drops
// every note whose id is in excluded. Order is preserved.
func Filter(notes []models.Note, excludeCompletedTodos bool, excluded Set) []models.Note {
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if excludeCompletedTodos && n.IsTodo && n.TodoCompleted {
			continue
		}
		if excluded.Has(n.ID) {
			continue
		}
		out = append(out, n)
	}
	return out
}
