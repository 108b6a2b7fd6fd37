package config

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceWindow coalesces bursts of write events from editors and
// from Save, which truncates then writes.
const DefaultDebounceWindow = 200 * time.Millisecond

// Debouncer runs a callback once no trigger has arrived for the duration
// (trailing edge).
type Debouncer struct {
	timer    *time.Timer
	duration time.Duration
	mu       sync.Mutex
}

// NewDebouncer creates a Debouncer with the given window.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Trigger (re)starts the window; callback runs when it expires.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, callback)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Watcher reports changes to the config file. It watches the parent
// directory so that the file may be created, replaced or removed.
type Watcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	path      string
	logger    *log.Logger
}

// NewWatcher creates a Watcher for the config file at path. The parent
// directory is created if it does not exist yet.
func NewWatcher(path string, logger *log.Logger) (*Watcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { // G301: restricted directory permissions
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return &Watcher{
		watcher:   fw,
		debouncer: NewDebouncer(DefaultDebounceWindow),
		path:      filepath.Clean(path),
		logger:    logger,
	}, nil
}

func (w *Watcher) logf(format string, args ...any) {
	if w.logger != nil {
		w.logger.Printf(format, args...)
	}
}

func (w *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// Run delivers debounced change notifications to onChange until ctx is
// done or the underlying watcher fails. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.debouncer.Stop()
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isConfigEvent(event) {
				w.logf("config change detected: %s (%s)", filepath.Base(event.Name), event.Op)
				w.debouncer.Trigger(onChange)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logf("watcher error: %v", err)
			return err
		}
	}
}
