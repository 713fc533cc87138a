// Package watch monitors a plugin tree for changes to release inputs and
// reports which plugins need re-evaluation. It backs the status --watch
// mode of the CLI.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// Handler receives the names of plugins whose release inputs changed.
// The slice is sorted and duplicate-free.
type Handler func(plugins []string)

// relevantFiles are the file names that feed a release evaluation. Any
// other write under the plugin tree is ignored.
var relevantFiles = map[string]bool{
	"CHANGELOG.md": true,
	"plugin.json":  true,
	"SKILL.md":     true,
}

// Watcher debounces filesystem events under a plugins directory and
// invokes a handler with the affected plugin names once the tree has
// been quiet for the debounce interval.
type Watcher struct {
	pluginsDir string
	handler    Handler
	debounce   time.Duration
	errWriter  io.Writer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the quiet interval before the handler fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithErrorWriter sets the destination for non-fatal watch errors.
func WithErrorWriter(out io.Writer) Option {
	return func(w *Watcher) { w.errWriter = out }
}

// New creates a Watcher over pluginsDir. The handler must not be nil.
func New(pluginsDir string, handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		pluginsDir: pluginsDir,
		handler:    handler,
		debounce:   250 * time.Millisecond,
		errWriter:  os.Stderr,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. New directories created at runtime
// are added to the watch list so plugins created mid-session are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := addDirsRecursive(fw, w.pluginsDir); err != nil {
		return fmt.Errorf("watching %s: %w", w.pluginsDir, err)
	}

	dirty := make(chan string, 64)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.collect(ctx, fw, dirty) })
	g.Go(func() error { return w.flush(ctx, dirty) })

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// collect translates raw fsnotify events into dirty plugin names.
func (w *Watcher) collect(ctx context.Context, fw *fsnotify.Watcher, dirty chan<- string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(fw, ev.Name); addErr != nil {
						fmt.Fprintf(w.errWriter, "watch: add dir %s: %v\n", ev.Name, addErr)
					}
					continue
				}
			}

			if !relevantFiles[filepath.Base(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			plugin, ok := w.pluginFor(ev.Name)
			if !ok {
				continue
			}
			select {
			case dirty <- plugin:
			case <-ctx.Done():
				return ctx.Err()
			}

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.errWriter, "watch: %v\n", watchErr)
		}
	}
}

// flush accumulates dirty plugin names and fires the handler once the
// tree has been quiet for the debounce interval.
func (w *Watcher) flush(ctx context.Context, dirty <-chan string) error {
	pending := make(map[string]bool)

	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		} else {
			timer.Reset(w.debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case plugin := <-dirty:
			pending[plugin] = true
			schedule()

		case <-fire:
			if len(pending) == 0 {
				continue
			}
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			pending = make(map[string]bool)
			w.handler(names)
		}
	}
}

// pluginFor maps an absolute event path to the plugin directory name it
// belongs to. Returns false for paths outside the plugins directory.
func (w *Watcher) pluginFor(path string) (string, bool) {
	rel, err := filepath.Rel(w.pluginsDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return "", false
	}
	return parts[0], true
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}
