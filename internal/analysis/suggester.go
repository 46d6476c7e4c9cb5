package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"docsorter/internal/metrics"
	"docsorter/internal/storage"
)

// SuggestionOutcome is reported once for every suggestion task.
type SuggestionOutcome struct {
	Path string
	// FileModifiedAt is the fingerprint of the record the task was built from.
	FileModifiedAt float64
	Suggestions    []storage.NameSuggestion
	Err            error
	// Skipped is set when no provider was available; it is not an error.
	Skipped bool
}

// SuggestionWorker fetches filename suggestions for already analyzed
// documents on its own background goroutine. All tasks run at background
// priority; interactive flows call the provider directly instead.
type SuggestionWorker struct {
	loop     *loop[*storage.AnalysisRecord]
	provider SuggestionProvider
	onResult func(SuggestionOutcome)
}

// NewSuggestionWorker creates a worker. provider may be nil, in which case
// every task is a no-op.
func NewSuggestionWorker(provider SuggestionProvider, onResult func(SuggestionOutcome), opts ...WorkerOption) *SuggestionWorker {
	w := &SuggestionWorker{
		provider: provider,
		onResult: onResult,
	}
	w.loop = newLoop("suggestions", newWorkerConfig(opts), w.fetch, func(path string, err error) {
		w.onResult(SuggestionOutcome{Path: path, Err: err})
	})
	return w
}

// Start launches the worker goroutine.
func (w *SuggestionWorker) Start() error {
	return w.loop.start()
}

// Stop asks the worker to exit and waits up to timeout.
func (w *SuggestionWorker) Stop(timeout time.Duration) error {
	return w.loop.stop(timeout)
}

// Available reports whether a suggestion provider can currently be used.
func (w *SuggestionWorker) Available() bool {
	return w.provider != nil && w.provider.IsAvailable()
}

// Add queues a suggestion fetch for rec. The record is copied.
func (w *SuggestionWorker) Add(rec *storage.AnalysisRecord) {
	w.loop.add(rec.Path, PriorityBackground, rec.Clone())
}

// CurrentlyProcessing returns the path being processed, or "" when idle.
func (w *SuggestionWorker) CurrentlyProcessing() string {
	return w.loop.currentlyProcessing()
}

// QueueLen returns the number of queued tasks.
func (w *SuggestionWorker) QueueLen() int {
	return w.loop.queue.size()
}

func (w *SuggestionWorker) fetch(ctx context.Context, path string, rec *storage.AnalysisRecord) {
	outcome := SuggestionOutcome{Path: path, FileModifiedAt: rec.FileModifiedAt}

	if !w.Available() {
		metrics.SuggestionFetches.WithLabelValues("skipped").Inc()
		outcome.Skipped = true
		w.onResult(outcome)
		return
	}

	suggestions, err := w.provider.SuggestFilename(ctx, BuildFilenameRequest(rec))
	if err != nil {
		metrics.SuggestionFetches.WithLabelValues("error").Inc()
		outcome.Err = fmt.Errorf("failed to fetch filename suggestions: %w", err)
		w.onResult(outcome)
		return
	}

	metrics.SuggestionFetches.WithLabelValues("ok").Inc()
	outcome.Suggestions = suggestions
	w.onResult(outcome)
}

// BuildFilenameRequest derives a provider request from an analysis record.
func BuildFilenameRequest(rec *storage.AnalysisRecord) FilenameRequest {
	req := FilenameRequest{
		Text:            rec.ExtractedText,
		CurrentFilename: filepath.Base(rec.Path),
		Keywords:        rec.Keywords,
	}
	if d, ok := rec.NewestDate(); ok {
		req.DetectedDate = d.Format(storage.DateLayout)
	}
	if rec.FileModifiedAt > 0 {
		sec := int64(rec.FileModifiedAt)
		nsec := int64((rec.FileModifiedAt - float64(sec)) * 1e9)
		req.FileDate = time.Unix(sec, nsec).Format(storage.DateLayout)
	}
	return req
}
