// Package watch drives rebuilds from filesystem events. Events are debounced
// so editor save bursts (write + chmod + rename) trigger one rebuild, not
// five.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the settle window applied when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Roots are the directories to watch, recursively.
	Roots []string

	// Debounce is how long the event stream must stay quiet before
	// OnChange fires.
	Debounce time.Duration

	// Filter decides which paths count as changes. Nil accepts everything.
	Filter func(path string) bool

	// OnChange receives the batch of changed paths after each settled
	// burst.
	OnChange func(paths []string)
}

// Watcher watches directory trees and invokes a callback after debounced
// change bursts.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
}

// New creates a watcher over the configured roots.
func New(opts Options) (*Watcher, error) {
	if opts.OnChange == nil {
		return nil, fmt.Errorf("watch: OnChange callback is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{opts: opts, watcher: fsw}
	for _, root := range opts.Roots {
		if err := w.addRecursive(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addRecursive registers root and every directory below it.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run processes events until the context is cancelled. It always returns the
// context's error.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var (
		pending = make(map[string]bool)
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return ctx.Err()
			}
			if !w.accept(event) {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.opts.Debounce)
			}

		case <-timerC:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			pending = make(map[string]bool)
			timer = nil
			timerC = nil
			w.opts.OnChange(paths)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return ctx.Err()
			}
			// Watch errors are transient (e.g. a removed subdirectory);
			// the loop keeps running.
		}
	}
}

// accept filters one event and starts watching newly created directories.
func (w *Watcher) accept(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// New subtree: watch it and report the change.
			_ = w.addRecursive(event.Name)
			return true
		}
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	if w.opts.Filter != nil && !w.opts.Filter(event.Name) {
		return false
	}
	return true
}
