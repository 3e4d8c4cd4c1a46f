// Package commands implements the named actions the host binds to menu
// entries, toolbar buttons and shortcuts.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/randomnote/internal/apperr"
	"github.com/starford/randomnote/internal/hotkey"
	"github.com/starford/randomnote/internal/selector"
	"github.com/starford/randomnote/internal/settings"
)

// Action names.
const (
	ActionOpenRandomNote  = "openRandomNote"
	ActionExcludeNotes    = "noteContextMenuExclude"
	ActionExcludeNotebook = "notebookContextMenuExclude"
	ActionAddRootNotebook = "notebookContextMenuAddRoot"
)

// Navigator opens a note in the editor.
type Navigator interface {
	OpenNote(ctx context.Context, noteID string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, noteID string) error

// OpenNote implements Navigator.
func (f NavigatorFunc) OpenNote(ctx context.Context, noteID string) error {
	return f(ctx, noteID)
}

// OpenResult reports the outcome of OpenRandomNote.
type OpenResult struct {
	Opened bool   `json:"opened"`
	NoteID string `json:"note_id,omitempty"`
}

// Bindings describes how the host should expose the open-random-note action.
type Bindings struct {
	Command         string `json:"command"`
	Accelerator     string `json:"accelerator"`
	ShowToolbarIcon bool   `json:"show_toolbar_icon"`
}

// Service runs the actions against a note source, a settings store and a
// navigator.
type Service struct {
	selector  *selector.Selector
	store     settings.Store
	navigator Navigator
	logger    *slog.Logger
}

// NewService creates a new command service.
func NewService(sel *selector.Selector, store settings.Store, nav Navigator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{selector: sel, store: store, navigator: nav, logger: logger}
}

// Settings returns the current settings.
func (s *Service) Settings(ctx context.Context) (settings.Settings, error) {
	return settings.Load(ctx, s.store)
}

// OpenRandomNote picks a random eligible note and opens it. selected holds
// the notes currently selected in the editor; they are never picked. When
// no note is eligible nothing is opened and no error is returned.
func (s *Service) OpenRandomNote(ctx context.Context, selected []string) (OpenResult, error) {
	cfg, err := settings.Load(ctx, s.store)
	if err != nil {
		return OpenResult{}, err
	}

	note, ok, err := s.selector.Select(ctx, selector.Config{
		RootNotebooks:         cfg.RootNotebooks,
		ExcludedNotes:         cfg.ExcludedNotes,
		ExcludedNotebooks:     cfg.ExcludedNotebooks,
		ExcludeCompletedTodos: cfg.ExcludeCompletedTodos,
	}, selected)
	if err != nil {
		return OpenResult{}, err
	}
	if !ok {
		s.logger.Info("open random note: no eligible note")
		return OpenResult{}, nil
	}

	s.logger.Debug("open random note", slog.String("note_id", note.ID))
	if err := s.navigator.OpenNote(ctx, note.ID); err != nil {
		return OpenResult{}, fmt.Errorf("commands: open note %s: %w", note.ID, err)
	}
	return OpenResult{Opened: true, NoteID: note.ID}, nil
}

// ExcludeNotes adds notes to the excluded-notes list.
func (s *Service) ExcludeNotes(ctx context.Context, noteIDs ...string) ([]string, error) {
	if len(settings.ParseList(settings.FormatList(noteIDs))) == 0 {
		return nil, fmt.Errorf("commands: no note ids: %w", apperr.ErrInvalidArgument)
	}
	s.logger.Info("excluding notes", slog.Any("note_ids", noteIDs))
	return settings.AddToList(ctx, s.store, settings.KeyExcludedNotes, noteIDs...)
}

// ExcludeNotebook adds a notebook to the excluded-notebooks list.
func (s *Service) ExcludeNotebook(ctx context.Context, notebookID string) ([]string, error) {
	return s.addNotebook(ctx, settings.KeyExcludedNotebooks, notebookID)
}

// AddRootNotebook adds a notebook to the root-notebooks list.
func (s *Service) AddRootNotebook(ctx context.Context, notebookID string) ([]string, error) {
	return s.addNotebook(ctx, settings.KeyRootNotebooks, notebookID)
}

func (s *Service) addNotebook(ctx context.Context, key, notebookID string) ([]string, error) {
	if len(settings.ParseList(notebookID)) != 1 {
		return nil, fmt.Errorf("commands: invalid notebook id %q: %w", notebookID, apperr.ErrInvalidArgument)
	}
	s.logger.Info("updating notebook list", slog.String("setting", key), slog.String("notebook_id", notebookID))
	return settings.AddToList(ctx, s.store, key, notebookID)
}

// Bindings resolves the accelerator and toolbar visibility. If custom
// hotkeys are enabled but none is set, the default is written back.
func (s *Service) Bindings(ctx context.Context) (Bindings, error) {
	cfg, err := settings.Load(ctx, s.store)
	if err != nil {
		return Bindings{}, err
	}
	accel, reset := hotkey.Resolve(cfg.UseCustomHotkey, cfg.CustomHotkey)
	if reset {
		if err := s.store.Set(ctx, settings.KeyCustomHotkey, hotkey.Default); err != nil {
			return Bindings{}, fmt.Errorf("commands: reset hotkey: %w", err)
		}
	}
	return Bindings{
		Command:         ActionOpenRandomNote,
		Accelerator:     accel,
		ShowToolbarIcon: cfg.ShowToolbarIcon,
	}, nil
}
