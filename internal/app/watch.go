package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileHandler is called with the watched path after it settles.
type FileHandler func(ctx context.Context, path string) error

// Watcher re-runs a handler whenever a file changes. Bursts of events are
// collapsed into one call once the file has been quiet for the debounce
// delay.
type Watcher struct {
	log      *slog.Logger
	debounce time.Duration
	handle   FileHandler
}

// NewWatcher creates a watcher calling handle once per burst of changes.
// A non-positive debounce means 500ms.
func NewWatcher(log *slog.Logger, debounce time.Duration, handle FileHandler) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{log: log, debounce: debounce, handle: handle}
}

// Watch runs the handler once, then again after every change to path,
// until ctx is done. The parent directory is watched so editors that save
// by renaming a temp file over the original are still seen. Handler errors
// are logged and do not stop the watch.
func (w *Watcher) Watch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.log.Info("watching", slog.String("path", abs), slog.Duration("debounce", w.debounce))

	w.run(ctx, abs)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", slog.String("error", err.Error()))

		case <-timer.C:
			w.run(ctx, abs)
		}
	}
}

func (w *Watcher) run(ctx context.Context, path string) {
	start := time.Now()
	if err := w.handle(ctx, path); err != nil {
		w.log.Error("processing failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	w.log.Info("processed", slog.String("path", path), slog.Duration("duration", time.Since(start)))
}
