package api

// OpenRandomNoteRequest carries the editor selection.
type OpenRandomNoteRequest struct {
	Selected []string `json:"selected"`
}

// ExcludeNotesRequest is the request body for excluding notes.
type ExcludeNotesRequest struct {
	IDs []string `json:"ids"`
}

// NotebookRequest is the request body for the notebook list actions.
type NotebookRequest struct {
	ID string `json:"id"`
}

// ListResponse is the setting-list after an update.
type ListResponse struct {
	Setting string   `json:"setting"`
	IDs     []string `json:"ids"`
}
