// Package watcher re-runs a callback when Ruby files under a set of
// directories change, debouncing bursts of filesystem events.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

// Watcher watches directories recursively for .rb changes.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration

	mu          sync.Mutex
	accumulated map[string]struct{}
	timer       *time.Timer
}

// New creates a watcher over the given directories (recursive).
func New(dirs []string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:          fs,
		debounce:    debounceInterval,
		accumulated: make(map[string]struct{}),
	}

	for _, dir := range dirs {
		if err := w.addRecursive(dir); err != nil {
			fs.Close()
			return nil, err
		}
	}

	return w, nil
}

// Run dispatches debounced change batches to callback until ctx ends.
func (w *Watcher) Run(ctx context.Context, callback func(files []string)) error {
	defer w.fs.Close()

	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				// New directories need to be picked up mid-run.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
					continue
				}
			}
			if !strings.HasSuffix(event.Name, ".rb") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.accumulate(event.Name, fire)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			_ = err // transient watch errors are not fatal

		case <-fire:
			callback(w.drain())
		}
	}
}

func (w *Watcher) accumulate(file string, fire chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.accumulated[file] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.accumulated))
	for file := range w.accumulated {
		files = append(files, file)
	}
	w.accumulated = make(map[string]struct{})
	return files
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}
