package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/lingshu/internal/models"
)

// ReloadCallback is called with the freshly loaded dataset after a
// successful reload.
type ReloadCallback func(ds models.Dataset)

// Watch starts an fsnotify watcher on the dataset file's directory and
// reloads the file whenever it changes, until ctx is cancelled. Events
// are debounced because editors typically emit several writes (or a
// rename) per save. A reload that fails to parse is logged and leaves
// the current data untouched.
func Watch(ctx context.Context, path string, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// Watch the parent directory: rename-based saves replace the file
	// inode, which a direct file watch would lose.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger.Info("dataset watcher: started", slog.String("path", abs))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("dataset watcher: stopped")
			return nil

		case <-reloadCh:
			ds, loadErr := Load(abs)
			if loadErr != nil {
				logger.Warn("dataset watcher: reload failed",
					slog.String("path", abs),
					slog.String("error", loadErr.Error()))
				continue
			}
			logger.Info("dataset watcher: reloaded",
				slog.String("path", abs),
				slog.Int("records", ds.Total()))
			if cb != nil {
				cb(ds)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			evAbs, relErr := filepath.Abs(ev.Name)
			if relErr != nil || evAbs != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("dataset watcher: error", slog.String("error", werr.Error()))
		}
	}
}
