// Package watch reruns generation when Go sources in the watched package
// directories change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"builder-generator/internal/logger"
)

// DefaultDebounce is how long the watcher waits for more events before
// regenerating.
const DefaultDebounce = 200 * time.Millisecond

// RunFunc performs one generation pass and returns the files it wrote.
type RunFunc func(ctx context.Context) (written []string, err error)

// Watcher reruns a RunFunc on source changes.
type Watcher struct {
	Dirs     []string
	Debounce time.Duration
	Run      RunFunc

	mu      sync.Mutex
	ignored map[string]bool // files written by the last run
}

// New returns a Watcher for dirs.
func New(dirs []string, run RunFunc) *Watcher {
	return &Watcher{Dirs: dirs, Debounce: DefaultDebounce, Run: run, ignored: make(map[string]bool)}
}

// Watch blocks until ctx is cancelled. Generation errors are logged, not
// returned, so a broken edit does not stop the loop.
func (w *Watcher) Watch(ctx context.Context) error {
	log := logger.FromContext(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.Dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}

		log.Info("watching", "dir", dir)
	}

	var timer <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			log.Debug("change detected", "file", event.Name, "op", event.Op.String())
			timer = time.After(w.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			log.Warn("watch error", "error", err)

		case <-timer:
			timer = nil
			w.runOnce(ctx)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	log := logger.FromContext(ctx)

	written, err := w.Run(ctx)
	if err != nil {
		log.Error("generation failed", "error", err)
		return
	}

	w.Ignore(written)
}

// Ignore replaces the set of files whose changes do not trigger a run,
// normally the files the previous run wrote.
func (w *Watcher) Ignore(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ignored = make(map[string]bool, len(paths))
	for _, p := range paths {
		w.ignored[filepath.Clean(p)] = true
	}
}

// relevant reports whether event should trigger a run: a write, create,
// remove or rename of a non-test .go file not written by the last run.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".go") || strings.HasSuffix(event.Name, "_test.go") {
		return false
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return !w.ignored[filepath.Clean(event.Name)]
}
