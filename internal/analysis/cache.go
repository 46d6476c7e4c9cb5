package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"docsorter/internal/metrics"
	"docsorter/internal/storage"
)

const storeTimeout = 5 * time.Second

// ErrClosed is returned by operations on a closed cache.
var ErrClosed = errors.New("analysis cache closed")

// Callback receives the result of a requested analysis. A failed analysis
// is delivered as an empty record carrying only the path.
type Callback func(*storage.AnalysisRecord)

// Options configures a Cache.
type Options struct {
	// Persist enables loading from and writing to the store.
	Persist bool
	// SuggestionPrecache enables background filename suggestion fetches.
	SuggestionPrecache bool
	PollInterval       time.Duration
	StopTimeout        time.Duration
	Logger             *slog.Logger
}

// Stats is a snapshot of the cache size.
type Stats struct {
	CachedCount           int `json:"cached_count"`
	PendingCount          int `json:"pending_count"`
	QueuedCount           int `json:"queued_count"`
	SuggestionQueuedCount int `json:"suggestion_queued_count"`
	SuggestionCachedCount int `json:"suggestion_cached_count"`
}

// Cache holds analysis records for document paths and schedules missing
// ones on the analysis worker. A record is served only while the
// document's modification time matches the one recorded at analysis.
//
// The record map and the pending registry share one mutex that is never
// held across callbacks, store calls or event delivery.
type Cache struct {
	mu         sync.Mutex
	records    map[string]*storage.AnalysisRecord
	pending    map[string][]Callback
	suggesting map[string]struct{}

	store    storage.AnalysisStore
	persist  atomic.Bool
	precache atomic.Bool

	analyzer  *AnalysisWorker
	suggester *SuggestionWorker
	events    *broadcaster

	logger      *slog.Logger
	stopTimeout time.Duration
	closed      atomic.Bool
	closeOnce   sync.Once
}

// NewCache creates a cache. provider and store may be nil.
func NewCache(extractor Extractor, provider SuggestionProvider, store storage.AnalysisStore, opts Options) *Cache {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stopTimeout := opts.StopTimeout
	if stopTimeout <= 0 {
		stopTimeout = DefaultStopTimeout
	}

	c := &Cache{
		records:     make(map[string]*storage.AnalysisRecord),
		pending:     make(map[string][]Callback),
		suggesting:  make(map[string]struct{}),
		store:       store,
		events:      newBroadcaster(),
		logger:      logger,
		stopTimeout: stopTimeout,
	}
	c.persist.Store(opts.Persist)
	c.precache.Store(opts.SuggestionPrecache)

	workerOpts := []WorkerOption{WithPollInterval(opts.PollInterval), WithLogger(logger)}
	c.analyzer = NewAnalysisWorker(extractor, c.onAnalysisComplete, c.onAnalysisFailure, workerOpts...)
	c.suggester = NewSuggestionWorker(provider, c.onSuggestions, workerOpts...)

	return c
}

// Start loads persisted records when persistence is enabled and starts both workers.
func (c *Cache) Start(ctx context.Context) error {
	if c.persisting() {
		records, err := c.store.Load(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "failed to load persisted analysis cache", "error", err)
		} else {
			c.mu.Lock()
			for path, rec := range records {
				c.records[path] = rec
			}
			count := len(c.records)
			c.mu.Unlock()
			metrics.CachedDocuments.Set(float64(count))
			c.logger.InfoContext(ctx, "analysis cache loaded", "records", len(records))
		}
	}

	if err := c.analyzer.Start(); err != nil {
		return fmt.Errorf("failed to start analysis worker: %w", err)
	}
	if err := c.suggester.Start(); err != nil {
		return fmt.Errorf("failed to start suggestion worker: %w", err)
	}
	return nil
}

// Close stops both workers. A worker that does not stop in time is logged
// and abandoned.
func (c *Cache) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		for _, stop := range []func(time.Duration) error{c.analyzer.Stop, c.suggester.Stop} {
			if err := stop(c.stopTimeout); err != nil {
				c.logger.Warn("worker shutdown incomplete", "error", err)
			}
		}
		c.events.close()
	})
	return nil
}

// Get returns a copy of the cached record for path, or nil. A record whose
// document changed or disappeared is evicted.
func (c *Cache) Get(path string) *storage.AnalysisRecord {
	path = filepath.Clean(path)

	c.mu.Lock()
	rec, ok := c.records[path]
	var snapshot *storage.AnalysisRecord
	if ok {
		snapshot = rec.Clone()
	}
	c.mu.Unlock()
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil
	}

	mtime, err := storage.ModTime(path)
	if err != nil || mtime != snapshot.FileModifiedAt {
		c.mu.Lock()
		// Only evict the record we checked; a fresh analysis may have replaced it meanwhile
		if c.records[path] == rec {
			delete(c.records, path)
		}
		count := len(c.records)
		c.mu.Unlock()
		metrics.CacheEvictions.Inc()
		metrics.CachedDocuments.Set(float64(count))
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return snapshot
}

// RequestAnalysis returns the cached record for path immediately, invoking
// callback synchronously as well. On a miss it registers callback and
// schedules one analysis; concurrent requests for the same path share it.
// An urgent request raises the priority of a queued background task.
func (c *Cache) RequestAnalysis(path string, urgent bool, callback Callback) *storage.AnalysisRecord {
	path = filepath.Clean(path)

	if rec := c.Get(path); rec != nil {
		if callback != nil {
			c.invoke(callback, rec)
		}
		return rec
	}

	return c.schedule(path, urgent, callback)
}

// schedule registers callback and queues path unless an analysis is
// already pending. It returns a record if one landed since the lookup.
func (c *Cache) schedule(path string, urgent bool, callback Callback) *storage.AnalysisRecord {
	c.mu.Lock()
	if rec, ok := c.records[path]; ok {
		snapshot := rec.Clone()
		c.mu.Unlock()
		if callback != nil {
			c.invoke(callback, snapshot)
		}
		return snapshot
	}

	callbacks, inFlight := c.pending[path]
	if callback != nil {
		callbacks = append(callbacks, callback)
	}
	if callbacks == nil {
		callbacks = []Callback{}
	}
	c.pending[path] = callbacks
	c.mu.Unlock()

	switch {
	case !inFlight && urgent:
		c.analyzer.AddUrgent(path)
	case !inFlight:
		c.analyzer.AddBackground(path)
	case urgent:
		c.analyzer.Promote(path, PriorityUrgent)
	}
	return nil
}

// Analyze waits for the analysis of path. It is the blocking counterpart of
// RequestAnalysis for interactive flows such as a rename dialog.
func (c *Cache) Analyze(ctx context.Context, path string, urgent bool) (*storage.AnalysisRecord, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	result := make(chan *storage.AnalysisRecord, 1)
	if rec := c.RequestAnalysis(path, urgent, func(r *storage.AnalysisRecord) {
		result <- r
	}); rec != nil {
		return rec, nil
	}

	select {
	case rec := <-result:
		return rec, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// PreCache warms the cache for a folder listing. Uncached documents are
// queued for background analysis; cached documents without suggestions
// get a suggestion fetch when precaching is enabled.
func (c *Cache) PreCache(paths []string) {
	queued, suggested := 0, 0
	for _, p := range paths {
		p = filepath.Clean(p)
		rec := c.Get(p)
		if rec == nil {
			if c.schedule(p, false, nil) == nil {
				queued++
			}
			continue
		}
		if c.precache.Load() && !rec.SuggestionsFetched && c.requestSuggestions(rec) {
			suggested++
		}
	}
	c.logger.Debug("pre-cache requested", "paths", len(paths), "queued", queued, "suggestions", suggested)
}

// Migrate moves the record for oldPath to newPath after a rename or move,
// keeping its suggestions. The fingerprint is refreshed from newPath when
// it exists. It reports whether a record was moved.
func (c *Cache) Migrate(oldPath, newPath string) bool {
	oldPath, newPath = filepath.Clean(oldPath), filepath.Clean(newPath)
	if oldPath == newPath {
		return false
	}
	mtime, statErr := storage.ModTime(newPath)

	c.mu.Lock()
	rec, ok := c.records[oldPath]
	if !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.records, oldPath)
	// Records are replaced, never mutated, once other goroutines may hold them
	moved := rec.Clone()
	moved.Path = newPath
	if statErr == nil {
		moved.FileModifiedAt = mtime
	}
	c.records[newPath] = moved
	snapshot := moved.Clone()
	c.mu.Unlock()

	c.logger.Debug("analysis cache migrated", "from", oldPath, "to", newPath, "suggestions_fetched", snapshot.SuggestionsFetched)

	if c.persisting() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := c.store.Rename(ctx, oldPath, snapshot); err != nil {
			metrics.PersistenceErrors.WithLabelValues("rename").Inc()
			c.logger.Warn("failed to persist cache migration", "from", oldPath, "to", newPath, "error", err)
		}
	}
	return true
}

// Clear drops every in-memory record. Persisted rows are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.records = make(map[string]*storage.AnalysisRecord)
	c.mu.Unlock()
	metrics.CachedDocuments.Set(0)
}

// ClearFor drops the in-memory record for path.
func (c *Cache) ClearFor(path string) {
	c.mu.Lock()
	delete(c.records, filepath.Clean(path))
	count := len(c.records)
	c.mu.Unlock()
	metrics.CachedDocuments.Set(float64(count))
}

// ClearPersistent removes every persisted row.
func (c *Cache) ClearPersistent(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	return c.store.DeleteAll(ctx)
}

// Stats returns the current cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		CachedCount:           len(c.records),
		PendingCount:          len(c.pending),
		QueuedCount:           c.analyzer.QueueLen(),
		SuggestionQueuedCount: c.suggester.QueueLen(),
	}
	for _, rec := range c.records {
		if rec.SuggestionsFetched {
			s.SuggestionCachedCount++
		}
	}
	return s
}

// Suggestions returns the fetched filename suggestions for path.
func (c *Cache) Suggestions(path string) []storage.NameSuggestion {
	rec := c.Get(path)
	if rec == nil || !rec.SuggestionsFetched {
		return nil
	}
	return rec.Suggestions
}

// IsAnalyzing reports whether path is the document currently being analyzed.
func (c *Cache) IsAnalyzing(path string) bool {
	return c.analyzer.CurrentlyProcessing() == filepath.Clean(path)
}

// CurrentlyProcessing returns the document being analyzed, or "".
func (c *Cache) CurrentlyProcessing() string {
	return c.analyzer.CurrentlyProcessing()
}

// SuggestionsAvailable reports whether a suggestion provider is usable.
func (c *Cache) SuggestionsAvailable() bool {
	return c.suggester.Available()
}

// SetPersistence toggles persistence at runtime.
func (c *Cache) SetPersistence(enabled bool) {
	c.persist.Store(enabled)
}

// Persistence reports whether persistence is enabled.
func (c *Cache) Persistence() bool {
	return c.persist.Load()
}

// SetSuggestionPrecache toggles background suggestion fetches at runtime.
func (c *Cache) SetSuggestionPrecache(enabled bool) {
	c.precache.Store(enabled)
}

// SuggestionPrecache reports whether background suggestion fetches are enabled.
func (c *Cache) SuggestionPrecache() bool {
	return c.precache.Load()
}

// Subscribe returns a channel of cache signals and a function that ends
// the subscription.
func (c *Cache) Subscribe() (<-chan Event, func()) {
	return c.events.subscribe()
}

func (c *Cache) persisting() bool {
	return c.store != nil && c.persist.Load()
}

func (c *Cache) onAnalysisComplete(rec *storage.AnalysisRecord) {
	path := rec.Path
	c.mu.Lock()
	c.records[path] = rec
	callbacks := c.pending[path]
	delete(c.pending, path)
	snapshot := rec.Clone()
	count := len(c.records)
	c.mu.Unlock()

	metrics.CachedDocuments.Set(float64(count))
	c.save(snapshot)

	for _, cb := range callbacks {
		c.invoke(cb, snapshot.Clone())
	}

	c.events.publish(Event{Kind: EventAnalyzed, Path: snapshot.Path})

	if c.precache.Load() && !snapshot.SuggestionsFetched {
		c.requestSuggestions(snapshot)
	}
}

func (c *Cache) onAnalysisFailure(f Failure) {
	c.mu.Lock()
	callbacks := c.pending[f.Path]
	delete(c.pending, f.Path)
	c.mu.Unlock()

	c.logger.Debug("analysis failed", "path", f.Path, "error", f.Message)

	for _, cb := range callbacks {
		c.invoke(cb, &storage.AnalysisRecord{Path: f.Path})
	}
}

// requestSuggestions queues a suggestion fetch unless one is already
// queued for the path or no provider is available.
func (c *Cache) requestSuggestions(rec *storage.AnalysisRecord) bool {
	if !c.suggester.Available() {
		return false
	}

	c.mu.Lock()
	if _, ok := c.suggesting[rec.Path]; ok {
		c.mu.Unlock()
		return false
	}
	c.suggesting[rec.Path] = struct{}{}
	c.mu.Unlock()

	c.suggester.Add(rec)
	return true
}

func (c *Cache) onSuggestions(out SuggestionOutcome) {
	c.mu.Lock()
	delete(c.suggesting, out.Path)
	if out.Skipped || out.Err != nil {
		c.mu.Unlock()
		if out.Err != nil {
			c.logger.Warn("filename suggestion fetch failed", "path", out.Path, "error", out.Err)
		}
		return
	}

	rec, ok := c.records[out.Path]
	// Suggestions computed from an older version of the document are dropped
	if !ok || rec.FileModifiedAt != out.FileModifiedAt {
		c.mu.Unlock()
		return
	}
	updated := rec.Clone()
	updated.Suggestions = out.Suggestions
	updated.SuggestionsFetched = true
	c.records[out.Path] = updated
	snapshot := updated.Clone()
	c.mu.Unlock()

	c.save(snapshot)
	c.events.publish(Event{Kind: EventSuggestionsReady, Path: out.Path})
}

// save writes rec to the store. Failures are logged and never affect the
// in-memory cache.
func (c *Cache) save(rec *storage.AnalysisRecord) {
	if !c.persisting() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := c.store.Upsert(ctx, rec); err != nil {
		metrics.PersistenceErrors.WithLabelValues("upsert").Inc()
		c.logger.Warn("failed to persist analysis record", "path", rec.Path, "error", err)
	}
}

func (c *Cache) invoke(cb Callback, rec *storage.AnalysisRecord) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("analysis callback panicked", "path", rec.Path, "panic", r)
		}
	}()
	cb(rec)
}
