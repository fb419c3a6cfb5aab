// Package watch reports changes to a tree document on disk.
//
// Watching uses fsnotify on the containing directory, which survives the
// rename-over-original writes most editors perform. When fsnotify cannot be
// set up the watcher falls back to polling modification time and size.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/arbor/pkg/errors"
)

// DefaultPollInterval is used in polling mode.
const DefaultPollInterval = time.Second

// ErrRemoved is reported when the watched file disappears.
var ErrRemoved = errors.New(errors.ErrCodeFileNotFound, "watched file was removed")

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long changes must settle before onChange runs.
func WithDebounce(d time.Duration) Option { return func(w *Watcher) { w.debounce = d } }

// WithPollInterval sets the stat interval used when polling.
func WithPollInterval(d time.Duration) Option { return func(w *Watcher) { w.poll = d } }

// WithForcePoll skips fsnotify and always polls.
func WithForcePoll(force bool) Option { return func(w *Watcher) { w.forcePoll = force } }

// WithOnError receives watch errors, including ErrRemoved. Errors are
// dropped by default.
func WithOnError(fn func(error)) Option { return func(w *Watcher) { w.onError = fn } }

// Watcher watches a single file.
type Watcher struct {
	path      string
	debounce  time.Duration
	poll      time.Duration
	forcePoll bool
	onError   func(error)
	polling   bool
}

// New returns a watcher for path. The file does not need to exist yet.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		poll:     DefaultPollInterval,
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string { return w.path }

// Polling reports whether the last Run fell back to polling.
func (w *Watcher) Polling() bool { return w.polling }

// Run calls onChange after each settled change until ctx is cancelled.
// onChange runs on the watcher goroutine; calls never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	changes := make(chan struct{}, 1)
	deb := NewDebouncer(w.debounce)
	defer deb.Cancel()
	signal := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	w.polling = w.forcePoll
	if !w.polling {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			err = fsw.Add(filepath.Dir(w.path))
		}
		if err != nil {
			if fsw != nil {
				fsw.Close()
			}
			w.polling = true
		} else {
			defer fsw.Close()
			go w.events(ctx, fsw, func() { deb.Trigger(signal) })
		}
	}
	if w.polling {
		go w.pollLoop(ctx, func() { deb.Trigger(signal) })
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changes:
			onChange()
		}
	}
}

func (w *Watcher) events(ctx context.Context, fsw *fsnotify.Watcher, trigger func()) {
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			switch {
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create), ev.Has(fsnotify.Rename):
				trigger()
			case ev.Has(fsnotify.Remove):
				w.onError(ErrRemoved)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) pollLoop(ctx context.Context, trigger func()) {
	var mtime time.Time
	var size int64
	if info, err := os.Stat(w.path); err == nil {
		mtime, size = info.ModTime(), info.Size()
	}

	tick := time.NewTicker(w.poll)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			info, err := os.Stat(w.path)
			if os.IsNotExist(err) {
				if !mtime.IsZero() {
					w.onError(ErrRemoved)
					mtime, size = time.Time{}, 0
				}
				continue
			}
			if err != nil {
				w.onError(err)
				continue
			}
			if !info.ModTime().Equal(mtime) || info.Size() != size {
				mtime, size = info.ModTime(), info.Size()
				trigger()
			}
		}
	}
}
