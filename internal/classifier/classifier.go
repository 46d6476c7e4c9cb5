// Package classifier ranks destination folders for a document, learning
// from the user's past sorting decisions.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"docsorter/internal/metrics"
	"docsorter/internal/storage"
)

// Signal names the source of a folder suggestion.
type Signal string

const (
	SignalSimilarity Signal = "similarity"
	SignalKeywords   Signal = "keywords"
	SignalFrequency  Signal = "frequency"
	SignalLearned    Signal = "learned_subfolder"
	SignalExisting   Signal = "existing_subfolder"
)

// Suggestion is a ranked destination folder.
type Suggestion struct {
	FolderPath   string  `json:"folder_path"`
	FolderName   string  `json:"folder_name"`
	Confidence   float64 `json:"confidence"`
	Reason       string  `json:"reason"`
	Signal       Signal  `json:"signal"`
	RelativePath string  `json:"relative_path,omitempty"`
}

// Weights are the heuristic constants of the ranking signals.
type Weights struct {
	SimilarityFloor      float64 // similarities at or below are ignored
	SimilarityMaxWeight  float64
	SimilarityMeanWeight float64
	SimilarityCap        float64
	KeywordScale         float64
	KeywordCap           float64
	FrequencyDivisor     float64
	FrequencyCap         float64
	SubfolderDivisor     float64
	SubfolderCap         float64
	ExistingSubfolder    float64
}

// DefaultWeights returns the standard ranking constants.
func DefaultWeights() Weights {
	return Weights{
		SimilarityFloor:      0.1,
		SimilarityMaxWeight:  0.7,
		SimilarityMeanWeight: 0.3,
		SimilarityCap:        0.95,
		KeywordScale:         0.8,
		KeywordCap:           0.8,
		FrequencyDivisor:     100,
		FrequencyCap:         0.3,
		SubfolderDivisor:     50,
		SubfolderCap:         0.8,
		ExistingSubfolder:    0.2,
	}
}

// State is the training state of a Classifier.
type State int

const (
	StateUntrained State = iota
	StateTrained
)

func (s State) String() string {
	if s == StateTrained {
		return "trained"
	}
	return "untrained"
}

// LearnRequest is one sorting decision made by the user.
type LearnRequest struct {
	DocumentPath  string
	TargetFolder  string
	ExtractedText string
	Keywords      []string
	DetectedDate  string
	NewFilename   string
	RelativePath  string
}

// SubfolderRequest asks for suggestions with display paths relative to RootFolders.
type SubfolderRequest struct {
	Text         string
	Keywords     []string
	DetectedDate string
	RootFolders  []string
	Max          int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithWeights overrides the ranking constants.
func WithWeights(w Weights) Option {
	return func(c *Classifier) { c.weights = w }
}

// WithLogger sets the classifier logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxFeatures caps the TF-IDF vocabulary.
func WithMaxFeatures(n int) Option {
	return func(c *Classifier) { c.maxFeatures = n }
}

// Classifier combines text similarity, keyword overlap and folder usage
// into ranked folder suggestions. The model is retrained from the full
// training history after every Learn.
type Classifier struct {
	store       storage.TrainingStore
	index       *FolderIndex
	weights     Weights
	maxFeatures int
	logger      *slog.Logger

	mu         sync.RWMutex
	vectorizer *Vectorizer
	vectors    [][]float64
	entries    []storage.TrainingEntry
}

// New creates a classifier over the destination roots and trains it from
// the stored history.
func New(ctx context.Context, store storage.TrainingStore, roots []string, opts ...Option) (*Classifier, error) {
	c := &Classifier{
		store:       store,
		weights:     DefaultWeights(),
		maxFeatures: DefaultMaxFeatures,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.index = NewFolderIndex(roots, c.logger)

	if err := c.retrain(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// SetRoots changes the destination roots used to resolve learned folders.
func (c *Classifier) SetRoots(roots []string) {
	c.index.SetRoots(roots)
}

// Roots returns the destination roots.
func (c *Classifier) Roots() []string {
	return c.index.Roots()
}

// State reports whether any training entry exists.
func (c *Classifier) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.entries) == 0 {
		return StateUntrained
	}
	return StateTrained
}

// TrainingCount returns the number of stored sorting decisions.
func (c *Classifier) TrainingCount(ctx context.Context) (int, error) {
	return c.store.Count(ctx)
}

// Learn stores a sorting decision, updates folder usage and retrains.
func (c *Classifier) Learn(ctx context.Context, req LearnRequest) (*storage.TrainingEntry, error) {
	if req.TargetFolder == "" {
		return nil, fmt.Errorf("target folder is required")
	}

	target := filepath.Clean(req.TargetFolder)
	entry, err := c.store.AddEntry(ctx, &storage.TrainingEntry{
		OriginalFilename:   filepath.Base(req.DocumentPath),
		OriginalPath:       req.DocumentPath,
		TargetFolderPath:   target,
		TargetFolderName:   filepath.Base(target),
		TargetRelativePath: req.RelativePath,
		ExtractedText:      req.ExtractedText,
		Keywords:           req.Keywords,
		DetectedDate:       req.DetectedDate,
		NewFilename:        req.NewFilename,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store sorting decision: %w", err)
	}

	// A folder created since the last walk is picked up so name lookups find it after it moves
	if _, ok := c.index.Lookup(entry.TargetFolderName); !ok && isDir(target) {
		c.index.Rebuild()
	}

	if err := c.retrain(ctx); err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "learned sorting decision", "folder", target, "document", entry.OriginalFilename)
	return entry, nil
}

func (c *Classifier) retrain(ctx context.Context) error {
	entries, err := c.store.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load training entries: %w", err)
	}

	vectorizer := NewVectorizer(c.maxFeatures)
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.ExtractedText
	}
	vectors := vectorizer.Fit(texts)

	c.mu.Lock()
	c.vectorizer = vectorizer
	c.vectors = vectors
	c.entries = entries
	c.mu.Unlock()

	metrics.TrainingEntries.Set(float64(len(entries)))
	c.logger.DebugContext(ctx, "classifier retrained", "entries", len(entries), "features", vectorizer.Features())
	return nil
}

// Suggest ranks destination folders for a document.
func (c *Classifier) Suggest(ctx context.Context, text string, keywords []string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		return nil, nil
	}

	merged := newRanking()
	for _, s := range c.bySimilarity(text) {
		merged.add(s)
	}
	for _, s := range c.byKeywords(keywords) {
		merged.add(s)
	}

	if merged.len() < limit {
		frequent, err := c.byFrequency(ctx, limit-merged.len())
		if err != nil {
			return nil, err
		}
		for _, s := range frequent {
			merged.add(s)
		}
	}

	out := merged.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	for _, s := range out {
		metrics.FolderSuggestions.WithLabelValues(string(s.Signal)).Inc()
	}
	return out, nil
}

// SuggestWithSubfolders ranks folders and adds display paths relative to
// the given roots. Learned folders are returned as learned; a year in a
// folder name is never adjusted to the document date.
func (c *Classifier) SuggestWithSubfolders(ctx context.Context, req SubfolderRequest) ([]Suggestion, error) {
	if req.Max <= 0 {
		return nil, nil
	}
	base, err := c.Suggest(ctx, req.Text, req.Keywords, 2*req.Max)
	if err != nil {
		return nil, err
	}

	roots := req.RootFolders
	if len(roots) == 0 {
		roots = c.index.Roots()
	}

	seen := make(map[string]struct{}, len(base))
	out := make([]Suggestion, 0, len(base))
	for _, s := range base {
		if _, dup := seen[s.FolderPath]; dup {
			continue
		}
		seen[s.FolderPath] = struct{}{}
		s.RelativePath = RelativeDisplayPath(s.FolderPath, roots)
		out = append(out, s)
		if len(out) == req.Max {
			break
		}
	}
	return out, nil
}

// SuggestSubfolders ranks subfolders of an already chosen parent: learned
// subfolders by usage first, then existing child directories.
func (c *Classifier) SuggestSubfolders(ctx context.Context, parent string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		return nil, nil
	}
	parent = filepath.Clean(parent)

	learned, err := c.store.SubfoldersForParent(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to load learned subfolders: %w", err)
	}
	if len(learned) > 2*limit {
		learned = learned[:2*limit]
	}

	w := c.weights
	var out []Suggestion
	seen := make(map[string]struct{})
	for _, f := range learned {
		path, ok := c.index.Resolve(f.Path, f.Name)
		if !ok {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		rel := f.RelativePath
		if rel == "" {
			rel = f.Name
		}
		out = append(out, Suggestion{
			FolderPath:   path,
			FolderName:   filepath.Base(path),
			Confidence:   min(float64(f.UsageCount)/w.SubfolderDivisor, w.SubfolderCap),
			Reason:       fmt.Sprintf("learned (used %dx)", f.UsageCount),
			Signal:       SignalLearned,
			RelativePath: rel,
		})
		if len(out) == limit {
			return out, nil
		}
	}

	for _, dir := range childDirs(parent) {
		if _, dup := seen[dir]; dup {
			continue
		}
		out = append(out, Suggestion{
			FolderPath:   dir,
			FolderName:   filepath.Base(dir),
			Confidence:   w.ExistingSubfolder,
			Reason:       "existing subfolder",
			Signal:       SignalExisting,
			RelativePath: filepath.Base(dir),
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// group collects the training rows sharing a learned folder name. The
// first row's path is the one resolved.
type group struct {
	learnedPath string
	scores      []float64
}

func (c *Classifier) bySimilarity(text string) []Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.entries) == 0 || text == "" {
		return nil
	}
	query := c.vectorizer.Transform(text)
	if query == nil {
		return nil
	}

	w := c.weights
	groups := make(map[string]*group)
	var order []string
	for i, vec := range c.vectors {
		sim := Cosine(query, vec)
		if sim <= w.SimilarityFloor {
			continue
		}
		e := c.entries[i]
		g, ok := groups[e.TargetFolderName]
		if !ok {
			g = &group{learnedPath: e.TargetFolderPath}
			groups[e.TargetFolderName] = g
			order = append(order, e.TargetFolderName)
		}
		g.scores = append(g.scores, sim)
	}

	var out []Suggestion
	for _, name := range order {
		g := groups[name]
		score := w.SimilarityMaxWeight*floats.Max(g.scores) + w.SimilarityMeanWeight*stat.Mean(g.scores, nil)
		path, ok := c.index.Resolve(g.learnedPath, name)
		if !ok {
			continue
		}
		out = append(out, Suggestion{
			FolderPath: path,
			FolderName: filepath.Base(path),
			Confidence: min(score, w.SimilarityCap),
			Reason:     fmt.Sprintf("similar content (%d%%)", int(score*100)),
			Signal:     SignalSimilarity,
		})
	}
	return out
}

func (c *Classifier) byKeywords(keywords []string) []Suggestion {
	if len(keywords) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		wanted[k] = struct{}{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[string]*group)
	var order []string
	total := 0
	for _, e := range c.entries {
		if !intersects(e.Keywords, wanted) {
			continue
		}
		g, ok := counts[e.TargetFolderName]
		if !ok {
			g = &group{learnedPath: e.TargetFolderPath}
			counts[e.TargetFolderName] = g
			order = append(order, e.TargetFolderName)
		}
		g.scores = append(g.scores, 1)
		total++
	}

	w := c.weights
	var out []Suggestion
	for _, name := range order {
		g := counts[name]
		path, ok := c.index.Resolve(g.learnedPath, name)
		if !ok {
			continue
		}
		out = append(out, Suggestion{
			FolderPath: path,
			FolderName: filepath.Base(path),
			Confidence: min(float64(len(g.scores))/float64(total)*w.KeywordScale, w.KeywordCap),
			Reason:     "similar keywords",
			Signal:     SignalKeywords,
		})
	}
	return out
}

func (c *Classifier) byFrequency(ctx context.Context, slots int) ([]Suggestion, error) {
	folders, err := c.store.MostUsedFolders(ctx, 2*slots)
	if err != nil {
		return nil, fmt.Errorf("failed to load folder usage: %w", err)
	}

	w := c.weights
	var out []Suggestion
	for _, f := range folders {
		path, ok := c.index.Resolve(f.Path, f.Name)
		if !ok {
			continue
		}
		out = append(out, Suggestion{
			FolderPath: path,
			FolderName: filepath.Base(path),
			Confidence: min(float64(f.UsageCount)/w.FrequencyDivisor, w.FrequencyCap),
			Reason:     fmt.Sprintf("frequently used (%dx)", f.UsageCount),
			Signal:     SignalFrequency,
		})
		if len(out) >= slots {
			break
		}
	}
	return out, nil
}

// ranking merges suggestions by folder path keeping the highest confidence.
type ranking struct {
	byPath map[string]Suggestion
	order  []string
}

func newRanking() *ranking {
	return &ranking{byPath: make(map[string]Suggestion)}
}

func (r *ranking) add(s Suggestion) {
	existing, ok := r.byPath[s.FolderPath]
	if !ok {
		r.order = append(r.order, s.FolderPath)
		r.byPath[s.FolderPath] = s
		return
	}
	if s.Confidence > existing.Confidence {
		r.byPath[s.FolderPath] = s
	}
}

func (r *ranking) len() int {
	return len(r.order)
}

func (r *ranking) sorted() []Suggestion {
	out := make([]Suggestion, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, r.byPath[p])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func intersects(keywords []string, wanted map[string]struct{}) bool {
	for _, k := range keywords {
		if _, ok := wanted[k]; ok {
			return true
		}
	}
	return false
}
