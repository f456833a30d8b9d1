// Package watcher reports changes to a directory of concept files.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/KirkDiggler/psychics/internal/errors"
)

// DefaultDebounce is how long the directory must stay quiet before OnChange runs
const DefaultDebounce = 250 * time.Millisecond

// ChangeFunc receives the sorted base names of the files that changed
type ChangeFunc func(ctx context.Context, files []string)

// Config contains configuration for the Watcher
type Config struct {
	Dir        string
	Extensions []string
	Debounce   time.Duration
	OnChange   ChangeFunc
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("dir", cfg.Dir, vb)
	if cfg.OnChange == nil {
		vb.RequiredField("on_change")
	}
	if cfg.Debounce < 0 {
		vb.InvalidField("debounce", "must not be negative")
	}
	return vb.Build()
}

// Watcher batches filesystem events for one directory
type Watcher struct {
	mu         sync.Mutex
	fs         *fsnotify.Watcher
	dir        string
	extensions []string
	debounce   time.Duration
	onChange   ChangeFunc
	stopCh     chan struct{}
	doneCh     chan struct{}
	running    bool
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg *Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		dir:        cfg.Dir,
		extensions: slices.Clone(cfg.Extensions),
		debounce:   debounce,
		onChange:   cfg.OnChange,
	}, nil
}

// Start begins watching in a background goroutine. It returns once the
// directory is registered with the OS.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return errors.FailedPrecondition("watcher already running")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return errors.WrapWithCodef(err, errors.CodeFailedPrecondition, "failed to watch %s", w.dir)
	}

	w.fs = fsw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	slog.InfoContext(ctx, "Watching concept directory", "dir", w.dir)
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.fs.Close(); err != nil {
		slog.Error("Failed to close fsnotify watcher", "error", err)
	}
}

// Done is closed when the event loop exits, either from Stop or context cancellation
func (w *Watcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			slog.DebugContext(ctx, "Concept file event", "file", event.Name, "op", event.Op.String())
			pending[filepath.Base(event.Name)] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.WarnContext(ctx, "Watcher error", "dir", w.dir, "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			files := make([]string, 0, len(pending))
			for name := range pending {
				files = append(files, name)
			}
			slices.Sort(files)
			clear(pending)
			w.onChange(ctx, files)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if len(w.extensions) == 0 {
		return true
	}
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(event.Name)))
}
