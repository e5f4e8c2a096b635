package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the bursts of events editors emit when
// saving a file.
const debounceDelay = 100 * time.Millisecond

// Watcher reports changes to a single configuration file.
type Watcher struct {
	fsw     *fsnotify.Watcher
	path    string
	changes chan struct{}
	done    chan struct{}
}

// Watch starts watching path. The containing directory is watched
// rather than the file itself, so atomic save (write to temp, rename
// over) keeps working.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		path:    abs,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes fires after the watched file is created, written, or
// renamed into place. Events are debounced and coalesced; a slow
// receiver misses no more than notification timing.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				timer.Reset(debounceDelay)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}
