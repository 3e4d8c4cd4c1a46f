package settings

import (
	"context"
	"fmt"

	"github.com/starford/randomnote/internal/apperr"
)

// IsListKey reports whether key holds a setting-list.
func IsListKey(key string) bool {
	switch key {
	case KeyExcludedNotes, KeyExcludedNotebooks, KeyRootNotebooks:
		return true
	}
	return false
}

// AddToList appends ids to the setting-list stored under key and writes the
// deduplicated result back. Adding ids that are already present leaves the
// list unchanged. The read-modify-write is not atomic: of two concurrent
// calls the later write wins.
func AddToList(ctx context.Context, store Store, key string, ids ...string) ([]string, error) {
	if !IsListKey(key) {
		return nil, fmt.Errorf("settings: %s is not a list: %w", key, apperr.ErrInvalidArgument)
	}
	raw, err := Get(ctx, store, key)
	if err != nil {
		return nil, err
	}
	list := AppendUnique(ParseList(raw), ParseList(FormatList(ids))...)
	if err := store.Set(ctx, key, FormatList(list)); err != nil {
		return nil, fmt.Errorf("settings: set %s: %w", key, err)
	}
	return list, nil
}
