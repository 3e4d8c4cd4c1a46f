package settings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/starford/randomnote/internal/apperr"
)

// File stores settings as a flat YAML mapping. The document is re-read on
// every Get so edits made by hand are picked up by the next invocation.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a File store at path. The parent directory is created if
// needed; the file itself is created on first Set.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("settings: mkdir: %w", err)
	}
	return &File{path: path}, nil
}

// Path returns the location of the settings document.
func (f *File) Path() string { return f.path }

// Get implements Store.
func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := doc[key]
	if !ok {
		return "", fmt.Errorf("settings: %s: %w", key, apperr.ErrNotFound)
	}
	return v, nil
}

// Set implements Store.
func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	doc[key] = value

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("settings: write %s: %w", f.path, err)
	}
	return nil
}

// Close implements io.Closer.
func (f *File) Close() error { return nil }

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", f.path, err)
	}
	doc := map[string]string{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", f.path, err)
	}
	if doc == nil {
		doc = map[string]string{}
	}
	return doc, nil
}
