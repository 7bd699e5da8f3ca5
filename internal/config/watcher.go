package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/asheshgoplani/article-deck/internal/logging"
)

var watchLog = logging.ForComponent(logging.CompConfig)

// DefaultDebounce is how long the file must stay quiet before a change is
// reported. Editors often write a file in several steps.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports edits to the config file.
// It watches the directory rather than the file so that editors that
// replace the file via rename are still seen.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration

	changeCh  chan struct{}
	closeCh   chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher starts watching the directory containing path.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		fsw:      fsw,
		debounce: DefaultDebounce,
		changeCh: make(chan struct{}, 1),
		closeCh:  make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// SetDebounce changes the quiet period. Call before the first event.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounce = d
	w.mu.Unlock()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.closeCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			watchLog.Warn("config_watch_error", slog.String("error", err.Error()))
		}
	}
}

// schedule restarts the debounce timer; only the last event in a burst fires.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.notify)
}

func (w *Watcher) notify() {
	watchLog.Debug("config_changed", slog.String("path", w.path))
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}

// ChangeChannel receives one value per settled burst of edits.
func (w *Watcher) ChangeChannel() <-chan struct{} {
	return w.changeCh
}

// Done is closed when the watcher is closed.
func (w *Watcher) Done() <-chan struct{} {
	return w.closeCh
}

// Close stops watching. Safe to call multiple times.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.closeCh)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		w.fsw.Close()
	})
}
