// Package tuning reloads sandfall configuration files while a game runs.
package tuning

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"sandfall/internal/sims/sandfall"
)

// Debounce is how long a file must stay quiet before it is reloaded.
const Debounce = 100 * time.Millisecond

// Watcher reloads a YAML config whenever it changes on disk. Only the most
// recent valid config is kept on Updates; load failures go to Errors.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	updates chan sandfall.Config
	errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The containing directory is watched so editors
// that save by renaming a temp file are picked up.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan sandfall.Config, 1),
		errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Updates delivers freshly loaded configs. It is closed by Close.
func (w *Watcher) Updates() <-chan sandfall.Config { return w.updates }

// Errors delivers load and watch failures. It is closed by Close.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.errors)
	defer close(w.updates)

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
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(Debounce)
			} else {
				timer.Reset(Debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := sandfall.LoadConfig(w.path)
	if err != nil {
		w.report(err)
		return
	}
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}

func (w *Watcher) report(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
