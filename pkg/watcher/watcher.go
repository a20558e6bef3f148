// Package watcher delivers debounced change notifications for a data file.
// Editors typically write files as several rapid events (truncate, write,
// rename); the debounce window coalesces them into one notification.
package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher watches one file and signals on Changed after writes settle.
type Watcher struct {
	path     string
	debounce time.Duration

	fsw     *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the settle window before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for path. The parent directory is watched rather
// than the file itself, so atomic replace (write temp + rename) is seen.
func New(path string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: defaultDebounce,
		fsw:      fsw,
		changed:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	return w, nil
}

// Start begins event processing. Idempotent.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return nil
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop halts the watcher and releases the underlying notify handle.
// Idempotent.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	wasStarted := w.started
	w.mu.Unlock()

	w.fsw.Close()
	if wasStarted {
		<-w.done
	}
}

// Changed returns the notification channel. It carries at most one pending
// signal; consumers that fall behind see a single coalesced notification.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

func (w *Watcher) loop() {
	defer close(w.done)
	// Closing changed lets blocked consumers observe shutdown.
	defer close(w.changed)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					<-timerC
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.changed <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		}
	}
}
