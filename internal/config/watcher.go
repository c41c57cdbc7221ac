package config

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when a closed Watcher is reused.
var ErrWatcherClosed = errors.New("config: watcher closed")

// Watcher reloads an options file into a Store whenever it changes on
// disk. Events are debounced so editors that write in several steps
// trigger a single reload.
type Watcher struct {
	store    *Store
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	onReload func(Options, error)
	closeCh  chan struct{}
	closed   bool
}

// Watch starts watching path and updating store on change. The optional
// onReload callback observes each reload attempt.
func Watch(store *Store, path string, onReload func(Options, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files, which drops a watch
	// on the file itself.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		store:    store,
		path:     abs,
		fsw:      fsw,
		debounce: 100 * time.Millisecond,
		onReload: onReload,
		closeCh:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	opts, err := Load(w.path)
	if err == nil {
		w.store.Set(opts)
	}
	if w.onReload != nil {
		w.onReload(opts, err)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	if w.closed {
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.closeCh)
	return w.fsw.Close()
}
