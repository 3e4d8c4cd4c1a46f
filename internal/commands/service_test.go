package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/randomnote/internal/apperr"
	"github.com/starford/randomnote/internal/hotkey"
	"github.com/starford/randomnote/internal/selector"
	"github.com/starford/randomnote/internal/settings"
	"github.com/starford/randomnote/internal/testutil"
)

type recorder struct {
	opened []string
	err    error
}

func (r *recorder) OpenNote(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	r.opened = append(r.opened, id)
	return nil
}

func testService(t *testing.T, notes *testutil.NoteStore, values map[string]string, r selector.Rand) (*Service, *settings.Memory, *recorder) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := settings.NewMemory(values)
	nav := &recorder{}
	sel := selector.New(notes, selector.WithRand(r), selector.WithLogger(logger))
	return NewService(sel, store, nav, logger), store, nav
}

func TestOpenRandomNote_OpensOnlyEligible(t *testing.T) {
	notes := testutil.NewNoteStore().Add("", testutil.Notes("A", "B", "C")...)
	svc, _, nav := testService(t, notes, map[string]string{settings.KeyExcludedNotes: "B"}, testutil.NewSeqRand(0, 0.5, 0.99))

	for range 3 {
		res, err := svc.OpenRandomNote(context.Background(), []string{"A"})
		if err != nil {
			t.Fatalf("OpenRandomNote: %v", err)
		}
		if !res.Opened || res.NoteID != "C" {
			t.Errorf("result = %+v, want C", res)
		}
	}
	if diff := cmp.Diff([]string{"C", "C", "C"}, nav.opened); diff != "" {
		t.Errorf("opened mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenRandomNote_NothingEligible(t *testing.T) {
	notes := testutil.NewNoteStore().Add("", testutil.Notes("A")...)
	svc, _, nav := testService(t, notes, nil, testutil.FixedRand(0))

	res, err := svc.OpenRandomNote(context.Background(), []string{"A"})
	if err != nil {
		t.Fatalf("OpenRandomNote: %v", err)
	}
	if res.Opened || len(nav.opened) != 0 {
		t.Errorf("expected no navigation, got %+v / %v", res, nav.opened)
	}
}

func TestOpenRandomNote_ReadsSettingsEachTime(t *testing.T) {
	notes := testutil.NewNoteStore().Add("", testutil.Notes("A", "B")...)
	svc, _, nav := testService(t, notes, nil, testutil.FixedRand(0))

	if _, err := svc.OpenRandomNote(context.Background(), nil); err != nil {
		t.Fatalf("OpenRandomNote: %v", err)
	}
	if _, err := svc.ExcludeNotes(context.Background(), "A"); err != nil {
		t.Fatalf("ExcludeNotes: %v", err)
	}
	if _, err := svc.OpenRandomNote(context.Background(), nil); err != nil {
		t.Fatalf("OpenRandomNote: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, nav.opened); diff != "" {
		t.Errorf("opened mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenRandomNote_GlobalListingFailure(t *testing.T) {
	boom := errors.New("api down")
	notes := testutil.NewNoteStore().Fail("notes", boom)
	svc, _, _ := testService(t, notes, nil, testutil.FixedRand(0))

	if _, err := svc.OpenRandomNote(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestOpenRandomNote_NavigatorFailure(t *testing.T) {
	notes := testutil.NewNoteStore().Add("", testutil.Notes("A")...)
	svc, _, nav := testService(t, notes, nil, testutil.FixedRand(0))
	nav.err = errors.New("editor closed")

	if _, err := svc.OpenRandomNote(context.Background(), nil); !errors.Is(err, nav.err) {
		t.Fatalf("err = %v, want %v", err, nav.err)
	}
}

func TestListMaintenance(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := testService(t, testutil.NewNoteStore(), nil, testutil.FixedRand(0))

	if _, err := svc.ExcludeNotes(ctx, "n1", "n2"); err != nil {
		t.Fatalf("ExcludeNotes: %v", err)
	}
	if _, err := svc.ExcludeNotes(ctx, "n2", "n3"); err != nil {
		t.Fatalf("ExcludeNotes: %v", err)
	}
	for range 2 {
		if _, err := svc.ExcludeNotebook(ctx, "nb1"); err != nil {
			t.Fatalf("ExcludeNotebook: %v", err)
		}
		if _, err := svc.AddRootNotebook(ctx, "root1"); err != nil {
			t.Fatalf("AddRootNotebook: %v", err)
		}
	}

	want := map[string]string{
		settings.KeyExcludedNotes:     "n1,n2,n3",
		settings.KeyExcludedNotebooks: "nb1",
		settings.KeyRootNotebooks:     "root1",
	}
	for key, v := range want {
		got, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get %s: %v", key, err)
		}
		if got != v {
			t.Errorf("%s = %q, want %q", key, got, v)
		}
	}
}

func TestListMaintenance_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := testService(t, testutil.NewNoteStore(), nil, testutil.FixedRand(0))

	if _, err := svc.ExcludeNotes(ctx); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("ExcludeNotes(): err = %v", err)
	}
	if _, err := svc.ExcludeNotebook(ctx, " "); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("ExcludeNotebook(blank): err = %v", err)
	}
	if _, err := svc.AddRootNotebook(ctx, "a,b"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("AddRootNotebook(a,b): err = %v", err)
	}
}

func TestBindings(t *testing.T) {
	ctx := context.Background()

	svc, _, _ := testService(t, testutil.NewNoteStore(), nil, testutil.FixedRand(0))
	b, err := svc.Bindings(ctx)
	if err != nil {
		t.Fatalf("Bindings: %v", err)
	}
	want := Bindings{Command: ActionOpenRandomNote, Accelerator: hotkey.Default, ShowToolbarIcon: true}
	if b != want {
		t.Errorf("Bindings = %+v, want %+v", b, want)
	}

	svc, _, _ = testService(t, testutil.NewNoteStore(), map[string]string{
		settings.KeyUseCustomHotkey: "true",
		settings.KeyCustomHotkey:    "ctrl + shift + r",
		settings.KeyShowToolbarIcon: "false",
	}, testutil.FixedRand(0))
	b, err = svc.Bindings(ctx)
	if err != nil {
		t.Fatalf("Bindings: %v", err)
	}
	if b.Accelerator != "Ctrl+Shift+R" || b.ShowToolbarIcon {
		t.Errorf("Bindings = %+v", b)
	}
}

func TestBindings_ResetsBlankCustomHotkey(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := testService(t, testutil.NewNoteStore(), map[string]string{
		settings.KeyUseCustomHotkey: "true",
		settings.KeyCustomHotkey:    "",
	}, testutil.FixedRand(0))

	b, err := svc.Bindings(ctx)
	if err != nil {
		t.Fatalf("Bindings: %v", err)
	}
	if b.Accelerator != hotkey.Default {
		t.Errorf("Accelerator = %q", b.Accelerator)
	}
	if v, _ := store.Get(ctx, settings.KeyCustomHotkey); v != hotkey.Default {
		t.Errorf("stored hotkey = %q, want %q", v, hotkey.Default)
	}
}
