package settings

import (
	"context"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"github.com/starford/randomnote/internal/apperr"
)

// Diskv stores each setting in its own file under a base directory.
type Diskv struct {
	d *diskv.Diskv
}

// NewDiskv creates a Diskv store rooted at basePath. Values are not cached
// in memory.
func NewDiskv(basePath string) *Diskv {
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 0,
	})}
}

// Get implements Store.
func (s *Diskv) Get(_ context.Context, key string) (string, error) {
	if !s.d.Has(key) {
		return "", fmt.Errorf("settings: %s: %w", key, apperr.ErrNotFound)
	}
	v, err := s.d.Read(key)
	if err != nil {
		return "", fmt.Errorf("settings: read %s: %w", key, err)
	}
	return string(v), nil
}

// Set implements Store.
func (s *Diskv) Set(_ context.Context, key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("settings: write %s: %w", key, err)
	}
	return nil
}

// Close implements io.Closer.
func (s *Diskv) Close() error { return nil }
