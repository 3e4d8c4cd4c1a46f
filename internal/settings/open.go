package settings

import (
	"fmt"
	"io"

	"github.com/starford/randomnote/internal/apperr"
)

// Drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverDiskv  = "diskv"
	DriverMemory = "memory"
)

// Backend is a Store that holds resources.
type Backend interface {
	Store
	io.Closer
}

// Open returns the store for driver rooted at path.
func Open(driver, path string) (Backend, error) {
	switch driver {
	case DriverFile:
		f, err := NewFile(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case DriverSQLite:
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverDiskv:
		return NewDiskv(path), nil
	case DriverMemory:
		return NewMemory(nil), nil
	}
	return nil, fmt.Errorf("settings: unknown driver %q: %w", driver, apperr.ErrInvalidArgument)
}
