// Package watch re-probes repositories when their contents change on disk.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/pkgnav/internal/repo"
)

// debounceDelay coalesces event bursts (a git pull touches many files).
const debounceDelay = 500 * time.Millisecond

// Watcher maps filesystem events inside repository directories to
// single-repository refresh requests. Watching is shallow: only the
// repository directory itself is registered, which catches descriptor edits
// and top-level churn without following the whole tree.
type Watcher struct {
	repos      []repo.Repository
	invalidate func(name string)
	logger     *logrus.Entry

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a watcher. invalidate is called with the repository name after
// the debounce window closes.
func New(repos []repo.Repository, invalidate func(name string), logger *logrus.Entry) *Watcher {
	return &Watcher{
		repos:      repos,
		invalidate: invalidate,
		logger:     logger,
		timers:     make(map[string]*time.Timer),
	}
}

// Run blocks until the context is cancelled. Watcher failures are logged and
// terminate the loop but are never fatal to the process.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.WithError(err).Warn("filesystem watcher unavailable")
		return err
	}
	defer fsw.Close()

	for _, rp := range w.repos {
		if err := fsw.Add(rp.Path); err != nil {
			w.logger.WithField("repo", rp.Name).WithError(err).Warn("cannot watch repository")
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if name := w.repoFor(event.Name); name != "" {
				w.schedule(name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("watcher error")
		}
	}
}

// repoFor resolves an event path to the owning repository name. Events on
// .git internals are ignored; the probe engine owns remote state tracking.
func (w *Watcher) repoFor(path string) string {
	if strings.Contains(path, string(filepath.Separator)+".git") {
		return ""
	}
	dir := filepath.Dir(path)
	for _, rp := range w.repos {
		if dir == rp.Path || path == rp.Path {
			return rp.Name
		}
	}
	return ""
}

// schedule arms (or re-arms) the per-repository debounce timer.
func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.timers[name]; ok {
		timer.Reset(debounceDelay)
		return
	}
	w.timers[name] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.timers, name)
		w.mu.Unlock()
		w.logger.WithField("repo", name).Debug("change detected, re-probing")
		w.invalidate(name)
	})
}
