package shell

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/argtree/foundation/core/error"
	mdwlog "github.com/msto63/argtree/foundation/core/log"
)

// DefaultDebounce collapses the bursts of events editors produce on save
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls a function whenever a single file changes. The parent
// directory is watched so that editors replacing the file by rename are
// noticed as well.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	logger   *mdwlog.Logger

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// NewWatcher starts watching path. onChange runs in its own goroutine once
// no further events arrived for debounce.
func NewWatcher(path string, debounce time.Duration, onChange func(), logger *mdwlog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "resolve watched file").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "create file watcher").WithCode(mdwerror.CodeInternal)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, mdwerror.Wrap(err, "watch directory").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", filepath.Dir(abs))
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: debounce,
		onChange: onChange,
		logger:   logger.WithField("component", "watcher"),
		done:     make(chan struct{}),
	}
	return w, nil
}

// Run processes events until ctx ends or Close is called
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				w.stopTimer()
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.stopTimer()
				return
			}
			w.logger.WarnWithErr("File watcher error", err, mdwlog.Fields{"path": w.path})
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Close stops the watcher. It waits for Run to return if it was started.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	select {
	case <-w.done:
	case <-time.After(time.Second):
	}
	return err
}
