package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// ReloadFunc observes the outcome of a reload attempt. c is nil when err is set.
type ReloadFunc func(c *Catalog, err error)

// Watcher reloads a catalog file when it changes and publishes the result
// through a Holder. A file that fails to load or validate is reported and the
// previously served catalog stays in place.
type Watcher struct {
	path     string
	holder   *Holder
	logger   *log.Logger
	debounce time.Duration
	onReload ReloadFunc
}

// NewWatcher creates a Watcher for the catalog file at path.
func NewWatcher(path string, holder *Holder, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		path:     abs,
		holder:   holder,
		logger:   logger.With("component", "catalog-watch"),
		debounce: 200 * time.Millisecond,
	}, nil
}

// OnReload registers fn to be called after every reload attempt.
func (w *Watcher) OnReload(fn ReloadFunc) {
	w.onReload = fn
}

// SetDebounce changes how long the watcher waits for writes to settle.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches until ctx is cancelled. The parent directory is watched rather
// than the file so editors that replace the file via rename are handled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch catalog directory: %w", err)
	}
	w.logger.Info("watching catalog file", "path", w.path)

	var (
		timer   *time.Timer
		pending <-chan time.Time
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
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("catalog watcher error", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	c, err := LoadFile(w.path)
	if err != nil {
		w.logger.Error("catalog reload rejected, keeping previous catalog", "path", w.path, "err", err)
		if w.onReload != nil {
			w.onReload(nil, err)
		}
		return
	}

	w.holder.Swap(c)
	w.logger.Info("catalog reloaded", "path", w.path, "projects", c.Len())
	if w.onReload != nil {
		w.onReload(c, nil)
	}
}
