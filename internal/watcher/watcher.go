// Package watcher reports changes to board directories, coalescing the
// burst of events a single save produces into one callback.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// debounceDelay is how long the watcher waits after the last relevant event.
// A lock, temp write and rename cycle finishes well within it.
const debounceDelay = 100 * time.Millisecond

const changeOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher invokes a callback after files under the watched directories change.
type Watcher struct {
	fsw      *fsnotify.Watcher
	callback func()
	ignore   map[string]bool

	mu    sync.Mutex
	timer *time.Timer
}

// New watches paths and calls callback, debounced, on every relevant change.
// Hidden files (the lock and in-flight temp files) never count; neither do
// base names listed in ignore.
func New(paths []string, callback func(), ignore ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{fsw: fsw, callback: callback, ignore: make(map[string]bool, len(ignore))}
	for _, name := range ignore {
		w.ignore[name] = true
	}
	return w, nil
}

// Run blocks until ctx is done or the watcher is closed. Watch errors go to
// errFn when it is non-nil.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				log.WithFields(log.Fields{"path": event.Name, "op": event.Op.String()}).Debug("board file changed")
				w.debounce()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&changeOps == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	return !strings.HasPrefix(name, ".") && !w.ignore[name]
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.callback)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
