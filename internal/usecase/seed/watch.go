package seed

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last change before a reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-seeds the catalogue whenever the dataset file changes.
type Watcher struct {
	svc      *Service
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

// NewWatcher creates a Watcher for the dataset at path.
func NewWatcher(svc *Service, path string, debounce time.Duration, logger *zap.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{svc: svc, path: filepath.Clean(path), debounce: debounce, logger: logger}
}

// Run watches until ctx is cancelled. The parent directory is watched so
// editors that replace the file by rename are picked up. Every reload is
// forced.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("Watching dataset", zap.String("path", w.path))

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) reload(ctx context.Context) {
	rep, err := w.svc.SeedFile(ctx, w.path, Options{Force: true})
	if err != nil {
		w.logger.Error("Dataset reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("Dataset reloaded", zap.String("path", w.path), zap.Int("written", rep.Written))
}
