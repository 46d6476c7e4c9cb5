package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"docsorter/internal/metrics"
	"docsorter/internal/storage"
)

// Failure describes an analysis task that produced no record.
type Failure struct {
	Path    string
	Message string
}

func (f Failure) Error() string {
	return fmt.Sprintf("analysis of %s failed: %s", f.Path, f.Message)
}

// AnalysisWorker extracts text, keywords and dates on a single background
// goroutine, serving urgent requests before background ones.
type AnalysisWorker struct {
	loop       *loop[struct{}]
	extractor  Extractor
	onComplete func(*storage.AnalysisRecord)
	onFailure  func(Failure)
	now        func() time.Time
}

// NewAnalysisWorker creates a worker. onComplete receives every successful
// record and onFailure every failed or skipped task; both run on the worker
// goroutine.
func NewAnalysisWorker(extractor Extractor, onComplete func(*storage.AnalysisRecord), onFailure func(Failure), opts ...WorkerOption) *AnalysisWorker {
	w := &AnalysisWorker{
		extractor:  extractor,
		onComplete: onComplete,
		onFailure:  onFailure,
		now:        time.Now,
	}
	w.loop = newLoop("analysis", newWorkerConfig(opts), w.analyze, func(path string, err error) {
		w.onFailure(Failure{Path: path, Message: err.Error()})
	})
	return w
}

// Start launches the worker goroutine.
func (w *AnalysisWorker) Start() error {
	return w.loop.start()
}

// Stop asks the worker to exit and waits up to timeout.
func (w *AnalysisWorker) Stop(timeout time.Duration) error {
	return w.loop.stop(timeout)
}

// AddUrgent queues path ahead of all background work.
func (w *AnalysisWorker) AddUrgent(path string) {
	w.Add(path, PriorityUrgent)
}

// AddBackground queues path for speculative pre-analysis.
func (w *AnalysisWorker) AddBackground(path string) {
	w.Add(path, PriorityBackground)
}

// Add queues path with an arbitrary priority.
func (w *AnalysisWorker) Add(path string, priority int) {
	w.loop.add(path, priority, struct{}{})
}

// Promote raises the priority of an already queued path.
func (w *AnalysisWorker) Promote(path string, priority int) bool {
	return w.loop.queue.promote(path, priority)
}

// CurrentlyProcessing returns the path being analyzed, or "" when idle.
func (w *AnalysisWorker) CurrentlyProcessing() string {
	return w.loop.currentlyProcessing()
}

// QueueLen returns the number of queued tasks.
func (w *AnalysisWorker) QueueLen() int {
	return w.loop.queue.size()
}

func (w *AnalysisWorker) analyze(ctx context.Context, path string, _ struct{}) {
	started := time.Now()

	rec, err := w.extract(ctx, path)
	if err != nil {
		metrics.AnalysisFailures.Inc()
		w.onFailure(Failure{Path: path, Message: err.Error()})
		return
	}

	metrics.AnalysisDuration.Observe(time.Since(started).Seconds())
	w.onComplete(rec)
}

// extract stamps the fingerprint before reading so that a write during
// extraction leaves a record that is already stale.
func (w *AnalysisWorker) extract(ctx context.Context, path string) (*storage.AnalysisRecord, error) {
	mtime, err := storage.ModTime(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("document no longer exists: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}

	doc, err := w.extractor.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer func() {
		_ = doc.Close()
	}()

	text, err := doc.ExtractText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	keywords, err := doc.ExtractKeywords()
	if err != nil {
		return nil, fmt.Errorf("failed to extract keywords: %w", err)
	}
	dates, err := doc.ExtractDates()
	if err != nil {
		return nil, fmt.Errorf("failed to extract dates: %w", err)
	}

	return &storage.AnalysisRecord{
		Path:           path,
		ExtractedText:  text,
		Keywords:       keywords,
		Dates:          dates,
		AnalyzedAt:     w.now().UTC(),
		FileModifiedAt: mtime,
	}, nil
}
