package inbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for an inbox to settle
// before reporting changed documents.
const DefaultDebounce = 500 * time.Millisecond

// ErrAlreadyRunning is returned by Run on a watcher that is already running.
var ErrAlreadyRunning = errors.New("inbox watcher already running")

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the settle time before a batch is reported.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithOnRemove sets the callback for documents that left the inbox.
func WithOnRemove(fn func(path string)) WatcherOption {
	return func(w *Watcher) {
		w.onRemove = fn
	}
}

// WithWatcherLogger sets the watcher logger.
func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher reports documents created or written in the inbox, batched
// after the folder has been quiet for the debounce interval.
type Watcher struct {
	dir      string
	debounce time.Duration
	onBatch  func(paths []string)
	onRemove func(path string)
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	pending map[string]struct{}
	timer   *time.Timer
}

// NewWatcher creates a watcher for dir. onBatch receives sorted paths.
func NewWatcher(dir string, onBatch func(paths []string), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dir:      filepath.Clean(dir),
		debounce: DefaultDebounce,
		onBatch:  onBatch,
		onRemove: func(string) {},
		logger:   slog.Default(),
		pending:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the inbox until ctx is done. Pending changes are flushed
// before it returns.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		_ = fsw.Close()
	}()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch inbox %s: %w", w.dir, err)
	}
	w.logger.InfoContext(ctx, "watching inbox", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.flush()
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				w.flush()
				return nil
			}
			w.handle(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				w.flush()
				return nil
			}
			w.logger.Warn("inbox watcher error", "dir", w.dir, "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !Accepts(event.Name) {
		return
	}
	path := filepath.Clean(event.Name)

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.onRemove(path)

	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		w.mu.Lock()
		w.pending[path] = struct{}{}
		if w.timer == nil {
			w.timer = time.AfterFunc(w.debounce, w.flush)
		} else {
			w.timer.Reset(w.debounce)
		}
		w.mu.Unlock()
	}
}

// flush reports and clears the pending batch.
func (w *Watcher) flush() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := make([]string, 0, len(w.pending))
	for p := range w.pending {
		batch = append(batch, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	sort.Strings(batch)
	w.logger.Debug("inbox changed", "documents", len(batch))
	w.onBatch(batch)
}
