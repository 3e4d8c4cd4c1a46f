// Package models defines the domain types shared by the selector, the
// Joplin client and the command layer.
package models

// PageSize is the number of items requested per page from a listing endpoint.
const PageSize = 100

// Note is a read-only copy of a note fetched from the host store.
type Note struct {
	ID            string `json:"id"`
	IsTodo        bool   `json:"is_todo"`
	TodoCompleted bool   `json:"todo_completed"`
}

// Notebook is a container of notes. Joplin calls these folders.
type Notebook struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ParentID string `json:"parent_id,omitempty"`
}

// Query is the set of parameters sent with every listing request.
type Query struct {
	Fields []string
	Page   int
	Limit  int
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"has_more"`
}
