package settings

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/randomnote/internal/checksum"
)

// ChangeCallback is called after the settings document changed on disk.
type ChangeCallback func()

// Watch watches the file at path until ctx is cancelled and calls cb each
// time its content changes. Bursts of events are debounced. The parent
// directory is watched rather than the file because atomic writes replace
// the file.
func Watch(ctx context.Context, path string, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}
	logger.Info("settings watcher: started", slog.String("path", path))

	last := fileChecksum(path)
	var debounce *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			logger.Info("settings watcher: stopped")
			return nil

		case <-debounceCh:
			debounceCh = nil
			cs := fileChecksum(path)
			if cs == last {
				continue
			}
			last = cs
			logger.Debug("settings watcher: changed", slog.String("path", path))
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(100 * time.Millisecond)
			} else {
				debounce.Reset(100 * time.Millisecond)
			}
			debounceCh = debounce.C

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("settings watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func fileChecksum(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return checksum.Sum(data)
}
