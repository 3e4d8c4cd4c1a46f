package settings

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/randomnote/internal/apperr"
	"github.com/starford/randomnote/internal/hotkey"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(context.Background(), NewMemory(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Settings{
		ShowToolbarIcon:   true,
		CustomHotkey:      hotkey.Default,
		ExcludedNotes:     []string{},
		ExcludedNotebooks: []string{},
		RootNotebooks:     []string{},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Values(t *testing.T) {
	store := NewMemory(map[string]string{
		KeyShowToolbarIcon:       "false",
		KeyUseCustomHotkey:       "true",
		KeyCustomHotkey:          "ctrl+k",
		KeyExcludedNotes:         " n1, n2 ",
		KeyExcludedNotebooks:     "nb1",
		KeyRootNotebooks:         "r1,r2",
		KeyExcludeCompletedTodos: "1",
	})
	s, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Settings{
		UseCustomHotkey:       true,
		CustomHotkey:          "ctrl+k",
		ExcludedNotes:         []string{"n1", "n2"},
		ExcludedNotebooks:     []string{"nb1"},
		RootNotebooks:         []string{"r1", "r2"},
		ExcludeCompletedTodos: true,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidBool(t *testing.T) {
	store := NewMemory(map[string]string{KeyExcludeCompletedTodos: "maybe"})
	_, err := Load(context.Background(), store)
	if !errors.Is(err, apperr.ErrInvalidSetting) {
		t.Fatalf("err = %v, want ErrInvalidSetting", err)
	}
}

func TestLoad_BlankBoolUsesDefault(t *testing.T) {
	store := NewMemory(map[string]string{KeyShowToolbarIcon: " "})
	s, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.ShowToolbarIcon {
		t.Error("blank showToolBarIcon should fall back to true")
	}
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) (string, error) { return "", f.err }
func (f failingStore) Set(context.Context, string, string) error   { return f.err }

func TestLoad_StoreError(t *testing.T) {
	boom := errors.New("disk on fire")
	if _, err := Load(context.Background(), failingStore{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestAddToList_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(map[string]string{KeyExcludedNotes: "a, b"})

	got, err := AddToList(ctx, store, KeyExcludedNotes, "c")
	if err != nil {
		t.Fatalf("AddToList: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	first, _ := store.Get(ctx, KeyExcludedNotes)

	if _, err := AddToList(ctx, store, KeyExcludedNotes, "c"); err != nil {
		t.Fatalf("AddToList: %v", err)
	}
	second, _ := store.Get(ctx, KeyExcludedNotes)
	if first != second || second != "a,b,c" {
		t.Errorf("second add changed list: %q -> %q", first, second)
	}
}

func TestAddToList_Batch(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(nil)
	got, err := AddToList(ctx, store, KeyExcludedNotes, "x", "y", "x", " ")
	if err != nil {
		t.Fatalf("AddToList: %v", err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAddToList_RejectsNonListKey(t *testing.T) {
	_, err := AddToList(context.Background(), NewMemory(nil), KeyCustomHotkey, "x")
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestStores(t *testing.T) {
	for _, driver := range []string{DriverMemory, DriverFile, DriverSQLite, DriverDiskv} {
		t.Run(driver, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings."+driver)
			store, err := Open(driver, path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			t.Cleanup(func() { store.Close() })
			ctx := context.Background()

			if _, err := store.Get(ctx, KeyRootNotebooks); !errors.Is(err, apperr.ErrNotFound) {
				t.Fatalf("Get missing: err = %v, want ErrNotFound", err)
			}
			if err := store.Set(ctx, KeyRootNotebooks, "r1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := store.Set(ctx, KeyRootNotebooks, "r1,r2"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			if err := store.Set(ctx, KeyExcludeCompletedTodos, "true"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := store.Get(ctx, KeyRootNotebooks)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got != "r1,r2" {
				t.Errorf("Get = %q, want r1,r2", got)
			}

			s, err := Load(ctx, store)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !s.ExcludeCompletedTodos || len(s.RootNotebooks) != 2 {
				t.Errorf("Load = %+v", s)
			}
		})
	}
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	a, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if _, err := AddToList(ctx, a, KeyExcludedNotebooks, "nb1"); err != nil {
		t.Fatalf("AddToList: %v", err)
	}

	b, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	v, err := b.Get(ctx, KeyExcludedNotebooks)
	if err != nil || v != "nb1" {
		t.Errorf("Get = %q, %v", v, err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open("etcd", ""); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
