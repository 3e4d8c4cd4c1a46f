// Package settings reads and maintains the persisted plugin options.
//
// Options live in a host-owned key/value Store as strings. Load is the only
// place they are parsed; the rest of the program works with Settings.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/starford/randomnote/internal/apperr"
	"github.com/starford/randomnote/internal/hotkey"
)

// Setting keys.
const (
	KeyShowToolbarIcon       = "showToolBarIcon"
	KeyUseCustomHotkey       = "useCustomHotkey"
	KeyCustomHotkey          = "customHotkey"
	KeyExcludedNotes         = "excludedNotes"
	KeyExcludedNotebooks     = "excludedNotebooks"
	KeyRootNotebooks         = "rootNotebooks"
	KeyExcludeCompletedTodos = "excludeCompletedTodos"
)

// Defaults holds the value of every key that has never been written.
var Defaults = map[string]string{
	KeyShowToolbarIcon:       "true",
	KeyUseCustomHotkey:       "false",
	KeyCustomHotkey:          hotkey.Default,
	KeyExcludedNotes:         "",
	KeyExcludedNotebooks:     "",
	KeyRootNotebooks:         "",
	KeyExcludeCompletedTodos: "false",
}

// Store is a string key/value settings store. Get returns an error wrapping
// apperr.ErrNotFound for a key that was never set.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Settings is the typed view of the store.
type Settings struct {
	ShowToolbarIcon       bool     `json:"show_toolbar_icon"`
	UseCustomHotkey       bool     `json:"use_custom_hotkey"`
	CustomHotkey          string   `json:"custom_hotkey"`
	ExcludedNotes         []string `json:"excluded_notes"`
	ExcludedNotebooks     []string `json:"excluded_notebooks"`
	RootNotebooks         []string `json:"root_notebooks"`
	ExcludeCompletedTodos bool     `json:"exclude_completed_todos"`
}

// Load reads every key from store. Missing keys take their default.
func Load(ctx context.Context, store Store) (Settings, error) {
	r := reader{ctx: ctx, store: store}
	s := Settings{
		ShowToolbarIcon:       r.bool(KeyShowToolbarIcon),
		UseCustomHotkey:       r.bool(KeyUseCustomHotkey),
		CustomHotkey:          r.string(KeyCustomHotkey),
		ExcludedNotes:         ParseList(r.string(KeyExcludedNotes)),
		ExcludedNotebooks:     ParseList(r.string(KeyExcludedNotebooks)),
		RootNotebooks:         ParseList(r.string(KeyRootNotebooks)),
		ExcludeCompletedTodos: r.bool(KeyExcludeCompletedTodos),
	}
	if r.err != nil {
		return Settings{}, r.err
	}
	return s, nil
}

// Get returns the stored value of key, or its default.
func Get(ctx context.Context, store Store, key string) (string, error) {
	v, err := store.Get(ctx, key)
	if errors.Is(err, apperr.ErrNotFound) {
		return Defaults[key], nil
	}
	if err != nil {
		return "", fmt.Errorf("settings: get %s: %w", key, err)
	}
	return v, nil
}

type reader struct {
	ctx   context.Context
	store Store
	err   error
}

func (r *reader) string(key string) string {
	if r.err != nil {
		return ""
	}
	v, err := Get(r.ctx, r.store, key)
	if err != nil {
		r.err = err
	}
	return v
}

func (r *reader) bool(key string) bool {
	v := strings.TrimSpace(r.string(key))
	if r.err != nil {
		return false
	}
	if v == "" {
		v = Defaults[key]
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.err = fmt.Errorf("settings: %s=%q: %w", key, v, apperr.ErrInvalidSetting)
	}
	return b
}
