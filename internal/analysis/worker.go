package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"docsorter/internal/metrics"
)

const (
	// DefaultPollInterval bounds how long an idle worker waits before
	// re-checking its stop flag.
	DefaultPollInterval = time.Second
	// DefaultStopTimeout is how long Stop waits for the loop to exit.
	DefaultStopTimeout = 2 * time.Second
)

var (
	// ErrStopTimeout is returned when a worker loop does not exit in time.
	ErrStopTimeout = errors.New("worker did not stop within timeout")
	// ErrAlreadyStarted is returned by Start on a running worker.
	ErrAlreadyStarted = errors.New("worker already started")
)

// WorkerOption configures a worker.
type WorkerOption func(*workerConfig)

type workerConfig struct {
	pollInterval time.Duration
	logger       *slog.Logger
}

// WithPollInterval sets the idle wait between stop-flag checks.
func WithPollInterval(d time.Duration) WorkerOption {
	return func(c *workerConfig) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithLogger sets the logger used by the worker loop.
func WithLogger(l *slog.Logger) WorkerOption {
	return func(c *workerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func newWorkerConfig(opts []WorkerOption) workerConfig {
	cfg := workerConfig{
		pollInterval: DefaultPollInterval,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// loop is a single-consumer goroutine draining a priority queue.
type loop[T any] struct {
	name         string
	queue        *priorityQueue[T]
	handle       func(ctx context.Context, path string, payload T)
	onPanic      func(path string, err error)
	pollInterval time.Duration
	logger       *slog.Logger

	mu      sync.Mutex
	started bool
	stopped atomic.Bool
	current atomic.Pointer[string]
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

func newLoop[T any](name string, cfg workerConfig, handle func(context.Context, string, T), onPanic func(string, error)) *loop[T] {
	return &loop[T]{
		name:         name,
		queue:        newPriorityQueue[T](),
		handle:       handle,
		onPanic:      onPanic,
		pollInterval: cfg.pollInterval,
		logger:       cfg.logger.With("worker", name),
		done:         make(chan struct{}),
	}
}

func (l *loop[T]) start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return ErrAlreadyStarted
	}
	l.started = true
	l.ctx, l.cancel = context.WithCancel(context.Background())

	go l.run()
	return nil
}

// stop asks the loop to exit and waits up to timeout. A task already
// executing runs to completion unless the timeout expires, after which its
// context is cancelled.
func (l *loop[T]) stop(timeout time.Duration) error {
	l.mu.Lock()
	started := l.started
	l.mu.Unlock()
	if !started {
		return nil
	}

	if !l.stopped.Swap(true) {
		l.queue.pushStop()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-l.done:
		l.cancel()
		return nil
	case <-timer.C:
		l.cancel()
		return fmt.Errorf("%s: %w", l.name, ErrStopTimeout)
	}
}

func (l *loop[T]) add(path string, priority int, payload T) {
	l.queue.push(path, priority, payload)
	metrics.QueueDepth.WithLabelValues(l.name).Set(float64(l.queue.size()))
}

func (l *loop[T]) run() {
	defer close(l.done)
	l.logger.Debug("worker started")

	for !l.stopped.Load() {
		t, ok := l.queue.pop(l.ctx, l.pollInterval)
		if !ok {
			continue
		}
		if t.kind == kindStop {
			break
		}
		metrics.QueueDepth.WithLabelValues(l.name).Set(float64(l.queue.size()))
		l.process(t)
	}

	l.logger.Debug("worker stopped")
}

// process runs one task. Panics are recovered so that a single bad
// document never takes the loop down.
func (l *loop[T]) process(t *task[T]) {
	path := t.path
	l.current.Store(&path)
	defer l.current.Store(nil)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic while processing task: %v", r)
			l.logger.Warn("worker task panicked", "path", path, "error", err)
			if l.onPanic != nil {
				l.onPanic(path, err)
			}
		}
	}()

	l.handle(l.ctx, path, t.payload)
}

// currentlyProcessing returns the path being processed or "" when idle.
func (l *loop[T]) currentlyProcessing() string {
	if p := l.current.Load(); p != nil {
		return *p
	}
	return ""
}
