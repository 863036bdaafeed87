package fixtures

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/applytrack/applytrack/internal/log"
)

// DefaultDebounce collapses bursts of editor writes into one reload.
const DefaultDebounce = 250 * time.Millisecond

// ErrNotWatchable is returned when asked to watch the embedded data.
var ErrNotWatchable = errors.New("embedded fixtures cannot be watched")

// Watch reloads dir through the package loader whenever a fixture file
// changes. See Loader.Watch.
func Watch(ctx context.Context, dir string, fn func(*Dataset, error)) error {
	return defaultLoader.Watch(ctx, dir, DefaultDebounce, fn)
}

// Watch blocks until ctx is done, calling fn after each debounced batch of
// changes to JSON files in dir. fn receives the freshly loaded dataset or the
// load error; the previous dataset stays valid either way. fn runs on the
// watcher goroutine.
func (l *Loader) Watch(ctx context.Context, dir string, debounce time.Duration, fn func(*Dataset, error)) error {
	if dir == "" {
		return ErrNotWatchable
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	log.Info(log.CatWatcher, "watching fixtures", "dir", dir)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			log.Debug(log.CatWatcher, "fixture changed", "file", filepath.Base(ev.Name), "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.ErrorErr(log.CatWatcher, "watcher error", err, "dir", dir)

		case <-fire:
			fire = nil
			l.Invalidate(dir)
			ds, err := l.Load(dir)
			if err != nil {
				log.ErrorErr(log.CatWatcher, "reload failed", err, "dir", dir)
			}
			fn(ds, err)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".json" {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
