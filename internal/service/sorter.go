package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analysis_cache.go -package=mocks docsorter/internal/service AnalysisCache
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_folder_classifier.go -package=mocks docsorter/internal/service FolderClassifier
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_sorter.go -package=mocks docsorter/internal/service Sorter
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_assistants.go -package=mocks docsorter/internal/service FolderAdvisor,RenameHistory,TokenMeter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"docsorter/internal/analysis"
	"docsorter/internal/classifier"
	"docsorter/internal/config"
	"docsorter/internal/contextutil"
	"docsorter/internal/extract"
	"docsorter/internal/storage"
)

// AnalysisCache is the analysis cache as seen by the service layer.
type AnalysisCache interface {
	Get(path string) *storage.AnalysisRecord
	RequestAnalysis(path string, urgent bool, callback analysis.Callback) *storage.AnalysisRecord
	Analyze(ctx context.Context, path string, urgent bool) (*storage.AnalysisRecord, error)
	PreCache(paths []string)
	Migrate(oldPath, newPath string) bool
	Clear()
	ClearFor(path string)
	ClearPersistent(ctx context.Context) error
	Stats() analysis.Stats
	CurrentlyProcessing() string
	IsAnalyzing(path string) bool
	SuggestionsAvailable() bool
	SetPersistence(enabled bool)
	SetSuggestionPrecache(enabled bool)
	Subscribe() (<-chan analysis.Event, func())
}

// FolderClassifier is the folder classifier as seen by the service layer.
type FolderClassifier interface {
	Learn(ctx context.Context, req classifier.LearnRequest) (*storage.TrainingEntry, error)
	SuggestWithSubfolders(ctx context.Context, req classifier.SubfolderRequest) ([]classifier.Suggestion, error)
	SuggestSubfolders(ctx context.Context, parent string, limit int) ([]classifier.Suggestion, error)
	SetRoots(roots []string)
	State() classifier.State
	TrainingCount(ctx context.Context) (int, error)
}

// FolderAdvisor asks a language model for a folder when the local ranking
// is weak.
type FolderAdvisor interface {
	IsAvailable() bool
	ClassifyFolder(ctx context.Context, q classifier.FolderQuery) (*classifier.FolderAdvice, error)
}

// RenameHistory looks up filenames the user chose for similar documents.
type RenameHistory interface {
	RenamesByKeywords(ctx context.Context, keywords []string, limit int) ([]storage.RenameEntry, error)
}

// TokenMeter reports the language model tokens spent so far.
type TokenMeter interface {
	TokensUsed() int64
}

const (
	// OriginHistory marks filename suggestions taken from earlier renames.
	OriginHistory = "history"

	historyConfidence  = 0.7
	historySuggestions = 3
)

// DocumentLister lists the documents waiting in the inbox.
type DocumentLister interface {
	Scan(ctx context.Context) ([]string, error)
}

// AnalyzeRequest asks for the analysis of one document.
type AnalyzeRequest struct {
	Path   string
	Urgent bool
	// Wait blocks until the analysis finished.
	Wait bool
}

// AnalyzeResponse carries the analysis, or Pending when it is still queued.
type AnalyzeResponse struct {
	Record  *storage.AnalysisRecord
	Pending bool
	// Analyzing is set while the worker is extracting this document.
	Analyzing bool
}

// FolderRequest asks for destination folders for an analyzed document.
type FolderRequest struct {
	Path string
	Max  int
}

// LearnRequest records that a document was filed into TargetFolder.
type LearnRequest struct {
	Path         string
	TargetFolder string
	NewFilename  string
}

// MoveRequest reports a document rename or move.
type MoveRequest struct {
	From string
	To   string
}

// ClearRequest drops cached analyses. An empty Path clears everything.
type ClearRequest struct {
	Path       string
	Persistent bool
}

// SettingsPatch changes the given settings; nil fields are left alone.
type SettingsPatch struct {
	PersistAnalysisCache *bool     `json:"persist_analysis_cache,omitempty"`
	SuggestionPrecache   *bool     `json:"suggestion_precache,omitempty"`
	TargetFolders        *[]string `json:"target_folders,omitempty"`
	MaxSuggestions       *int      `json:"max_suggestions,omitempty"`
}

// Stats summarizes the cache and classifier state.
type Stats struct {
	analysis.Stats
	CurrentlyProcessing  string `json:"currently_processing,omitempty"`
	PersistenceEnabled   bool   `json:"persistence_enabled"`
	SuggestionPrecache   bool   `json:"suggestion_precache"`
	SuggestionsAvailable bool   `json:"suggestions_available"`
	ClassifierState      string `json:"classifier_state"`
	TrainingCount        int    `json:"training_count"`
	TokensUsed           int64  `json:"tokens_used"`
}

// Sorter is the document sorting use case: analysis, folder and filename
// suggestions, learning from decisions and settings.
type Sorter interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error)
	PreCache(ctx context.Context, paths []string) (int, error)
	PreCacheInbox(ctx context.Context) (int, error)
	SuggestFolders(ctx context.Context, req FolderRequest) ([]classifier.Suggestion, error)
	SuggestSubfolders(ctx context.Context, parent string, max int) ([]classifier.Suggestion, error)
	SuggestFilenames(ctx context.Context, path string) ([]storage.NameSuggestion, error)
	Learn(ctx context.Context, req LearnRequest) (*storage.TrainingEntry, error)
	RecordMove(ctx context.Context, req MoveRequest) (bool, error)
	ClearCache(ctx context.Context, req ClearRequest) error
	Stats(ctx context.Context) (Stats, error)
	Settings() config.Settings
	UpdateSettings(ctx context.Context, patch SettingsPatch) (config.Settings, error)
	Subscribe() (<-chan analysis.Event, func())
}

// Deps are the collaborators of NewSorter. Only Cache, Classifier and
// Settings are required.
type Deps struct {
	Cache      AnalysisCache
	Classifier FolderClassifier
	Provider   analysis.SuggestionProvider
	Advisor    FolderAdvisor
	History    RenameHistory
	Tokens     TokenMeter
	Inbox      DocumentLister
	Settings   *config.SettingsStore
}

type sorter struct {
	cache      AnalysisCache
	classifier FolderClassifier
	provider   analysis.SuggestionProvider
	advisor    FolderAdvisor
	history    RenameHistory
	tokens     TokenMeter
	inbox      DocumentLister
	settings   *config.SettingsStore
}

// NewSorter creates a Sorter and applies the stored settings to the cache
// and classifier.
func NewSorter(deps Deps) Sorter {
	s := &sorter{
		cache:      deps.Cache,
		classifier: deps.Classifier,
		provider:   deps.Provider,
		advisor:    deps.Advisor,
		history:    deps.History,
		tokens:     deps.Tokens,
		inbox:      deps.Inbox,
		settings:   deps.Settings,
	}
	s.apply(s.settings.Get())
	return s
}

func (s *sorter) apply(settings config.Settings) {
	s.cache.SetPersistence(settings.PersistAnalysisCache)
	s.cache.SetSuggestionPrecache(settings.SuggestionPrecache)
	s.classifier.SetRoots(settings.TargetFolders)
}

// Analyze returns the analysis for a document, scheduling it on a miss.
func (s *sorter) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	path, err := documentPath("path", req.Path)
	if err != nil {
		return AnalyzeResponse{}, err
	}
	if !extract.IsSupported(path) {
		return AnalyzeResponse{}, fmt.Errorf("%w: unsupported document type %q", ErrInvalidInput, filepath.Ext(path))
	}

	if !req.Wait {
		rec := s.cache.RequestAnalysis(path, req.Urgent, nil)
		if rec != nil {
			return AnalyzeResponse{Record: rec}, nil
		}
		return AnalyzeResponse{Pending: true, Analyzing: s.cache.IsAnalyzing(path)}, nil
	}

	rec, err := s.cache.Analyze(ctx, path, req.Urgent)
	if err != nil {
		logger.ErrorContext(ctx, "failed to analyze document", "path", path, "error", err)
		return AnalyzeResponse{}, WrapError(err, "failed to analyze document")
	}
	if rec.IsEmpty() {
		logger.WarnContext(ctx, "document yielded no analysis", "path", path)
	}
	return AnalyzeResponse{Record: rec}, nil
}

// PreCache queues background analysis for paths and returns how many
// supported documents were handed to the cache.
func (s *sorter) PreCache(ctx context.Context, paths []string) (int, error) {
	accepted := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" || !filepath.IsAbs(p) {
			return 0, &ValidationError{Field: "paths", Message: "must contain absolute paths"}
		}
		if extract.IsSupported(p) {
			accepted = append(accepted, filepath.Clean(p))
		}
	}
	s.cache.PreCache(accepted)
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "pre-cache scheduled", "requested", len(paths), "accepted", len(accepted))
	return len(accepted), nil
}

// PreCacheInbox warms the cache for every document in the inbox.
func (s *sorter) PreCacheInbox(ctx context.Context) (int, error) {
	if s.inbox == nil {
		return 0, WrapError(ErrUnavailable, "inbox not configured")
	}
	paths, err := s.inbox.Scan(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to scan inbox", "error", err)
		return 0, WrapError(err, "failed to scan inbox")
	}
	s.cache.PreCache(paths)
	return len(paths), nil
}

// SuggestFolders ranks destination folders for an analyzed document. A
// language model is consulted when the local ranking is empty or weak.
func (s *sorter) SuggestFolders(ctx context.Context, req FolderRequest) ([]classifier.Suggestion, error) {
	path, err := documentPath("path", req.Path)
	if err != nil {
		return nil, err
	}
	rec := s.cache.Get(path)
	if rec == nil {
		return nil, ErrNotAnalyzed
	}

	settings := s.settings.Get()
	sreq := classifier.SubfolderRequest{
		Text:        rec.ExtractedText,
		Keywords:    rec.Keywords,
		RootFolders: settings.TargetFolders,
		Max:         s.limit(req.Max),
	}
	if d, ok := rec.NewestDate(); ok {
		sreq.DetectedDate = d.Format(storage.DateLayout)
	}

	suggestions, err := s.classifier.SuggestWithSubfolders(ctx, sreq)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to suggest folders", "path", path, "error", err)
		return nil, WrapError(err, "failed to suggest folders")
	}
	return s.withAdvice(ctx, sreq, suggestions), nil
}

// withAdvice merges a language model's folder choice into local. Model
// failures leave the local ranking unchanged.
func (s *sorter) withAdvice(ctx context.Context, req classifier.SubfolderRequest, local []classifier.Suggestion) []classifier.Suggestion {
	if !classifier.NeedsAdvice(local) || s.advisor == nil || !s.advisor.IsAvailable() {
		return local
	}
	logger := contextutil.LoggerFromContext(ctx)

	folders := classifier.CandidateFolders(req.RootFolders, local)
	if len(folders) == 0 {
		return local
	}
	names := make([]string, len(folders))
	for i, f := range folders {
		names[i] = filepath.Base(f)
	}

	advice, err := s.advisor.ClassifyFolder(ctx, classifier.FolderQuery{
		Text:         req.Text,
		Folders:      names,
		Keywords:     req.Keywords,
		DetectedDate: req.DetectedDate,
	})
	if err != nil {
		logger.WarnContext(ctx, "folder advice failed, using local ranking", "error", err)
		return local
	}
	if advice == nil {
		return local
	}
	folder, ok := classifier.MatchFolder(advice.Folder, folders)
	if !ok {
		logger.DebugContext(ctx, "model picked an unknown folder", "folder", advice.Folder)
		return local
	}

	reason := advice.Reason
	if reason == "" {
		reason = "LLM recommendation"
	}
	return classifier.MergeAdvice(local, classifier.Suggestion{
		FolderPath:   folder,
		FolderName:   filepath.Base(folder),
		Confidence:   advice.Confidence,
		Reason:       reason,
		Signal:       classifier.SignalModel,
		RelativePath: classifier.RelativeDisplayPath(folder, req.RootFolders),
	}, req.Max)
}

// SuggestSubfolders ranks subfolders of parent.
func (s *sorter) SuggestSubfolders(ctx context.Context, parent string, max int) ([]classifier.Suggestion, error) {
	if parent == "" || !filepath.IsAbs(parent) {
		return nil, &ValidationError{Field: "parent", Message: "must be an absolute path"}
	}
	suggestions, err := s.classifier.SuggestSubfolders(ctx, filepath.Clean(parent), s.limit(max))
	if err != nil {
		return nil, WrapError(err, "failed to suggest subfolders")
	}
	return suggestions, nil
}

// SuggestFilenames returns filename proposals for an analyzed document:
// precached or freshly fetched model suggestions, then names the user gave
// documents with the same keywords, then the local one.
func (s *sorter) SuggestFilenames(ctx context.Context, path string) ([]storage.NameSuggestion, error) {
	logger := contextutil.LoggerFromContext(ctx)

	path, err := documentPath("path", path)
	if err != nil {
		return nil, err
	}
	rec := s.cache.Get(path)
	if rec == nil {
		return nil, ErrNotAnalyzed
	}

	var out []storage.NameSuggestion
	switch {
	case rec.SuggestionsFetched:
		out = slices.Clone(rec.Suggestions)
	case s.provider != nil && s.provider.IsAvailable():
		fetched, err := s.provider.SuggestFilename(ctx, analysis.BuildFilenameRequest(rec))
		if err != nil {
			logger.WarnContext(ctx, "filename suggestion failed, using local suggestion", "path", path, "error", err)
		}
		out = fetched
	}

	add := func(n storage.NameSuggestion) {
		if !slices.ContainsFunc(out, func(o storage.NameSuggestion) bool { return o.Text == n.Text }) {
			out = append(out, n)
		}
	}
	for _, n := range s.historySuggestions(ctx, rec.Keywords, filepath.Ext(path)) {
		add(n)
	}
	add(extract.SuggestFilename(rec.ExtractedText, filepath.Base(path), rec.Keywords, rec.Dates))
	return out, nil
}

// historySuggestions offers the names of earlier renames sharing a keyword,
// carrying the document's own extension.
func (s *sorter) historySuggestions(ctx context.Context, keywords []string, ext string) []storage.NameSuggestion {
	if s.history == nil || len(keywords) == 0 {
		return nil
	}
	entries, err := s.history.RenamesByKeywords(ctx, keywords, historySuggestions)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to load rename history", "error", err)
		return nil
	}
	out := make([]storage.NameSuggestion, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.NewFilename, filepath.Ext(e.NewFilename)) + ext
		out = append(out, storage.NameSuggestion{Text: name, Confidence: historyConfidence, Origin: OriginHistory})
	}
	return out
}

// Learn records a sorting decision for a document. The document is analyzed
// first when the cache has no record for it.
func (s *sorter) Learn(ctx context.Context, req LearnRequest) (*storage.TrainingEntry, error) {
	path, err := documentPath("path", req.Path)
	if err != nil {
		return nil, err
	}
	ctx = contextutil.WithAttrs(ctx, "path", path)
	logger := contextutil.LoggerFromContext(ctx)
	if req.TargetFolder == "" || !filepath.IsAbs(req.TargetFolder) {
		return nil, &ValidationError{Field: "target_folder", Message: "must be an absolute path"}
	}
	target := filepath.Clean(req.TargetFolder)

	rec := s.cache.Get(path)
	if rec == nil {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		rec, err = s.cache.Analyze(ctx, path, true)
		if err != nil {
			return nil, WrapError(err, "failed to analyze document")
		}
	}

	lreq := classifier.LearnRequest{
		DocumentPath:  path,
		TargetFolder:  target,
		ExtractedText: rec.ExtractedText,
		Keywords:      rec.Keywords,
		NewFilename:   req.NewFilename,
		RelativePath:  classifier.RelativeDisplayPath(target, s.settings.Get().TargetFolders),
	}
	if d, ok := rec.NewestDate(); ok {
		lreq.DetectedDate = d.Format(storage.DateLayout)
	}

	entry, err := s.classifier.Learn(ctx, lreq)
	if err != nil {
		logger.ErrorContext(ctx, "failed to learn sorting decision", "target", target, "error", err)
		return nil, WrapError(err, "failed to learn sorting decision")
	}
	logger.InfoContext(ctx, "sorting decision learned", "target", lreq.RelativePath)
	return entry, nil
}

// RecordMove carries the cached analysis of a moved document to its new path.
func (s *sorter) RecordMove(ctx context.Context, req MoveRequest) (bool, error) {
	from, err := documentPath("from", req.From)
	if err != nil {
		return false, err
	}
	to, err := documentPath("to", req.To)
	if err != nil {
		return false, err
	}
	moved := s.cache.Migrate(from, to)
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "document move recorded", "from", from, "to", to, "migrated", moved)
	return moved, nil
}

// ClearCache drops cached analyses, optionally including the persisted ones.
func (s *sorter) ClearCache(ctx context.Context, req ClearRequest) error {
	if req.Path != "" {
		path, err := documentPath("path", req.Path)
		if err != nil {
			return err
		}
		s.cache.ClearFor(path)
	} else {
		s.cache.Clear()
	}

	if req.Persistent {
		if err := s.cache.ClearPersistent(ctx); err != nil {
			contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to clear persisted analyses", "error", err)
			return WrapError(err, "failed to clear persisted analyses")
		}
	}
	return nil
}

// Stats reports cache and classifier counters.
func (s *sorter) Stats(ctx context.Context) (Stats, error) {
	count, err := s.classifier.TrainingCount(ctx)
	if err != nil {
		return Stats{}, WrapError(err, "failed to count training entries")
	}
	settings := s.settings.Get()
	var tokens int64
	if s.tokens != nil {
		tokens = s.tokens.TokensUsed()
	}
	return Stats{
		Stats:                s.cache.Stats(),
		CurrentlyProcessing:  s.cache.CurrentlyProcessing(),
		PersistenceEnabled:   settings.PersistAnalysisCache,
		SuggestionPrecache:   settings.SuggestionPrecache,
		SuggestionsAvailable: s.cache.SuggestionsAvailable(),
		ClassifierState:      s.classifier.State().String(),
		TrainingCount:        count,
		TokensUsed:           tokens,
	}, nil
}

// Settings returns the current settings.
func (s *sorter) Settings() config.Settings {
	return s.settings.Get()
}

// UpdateSettings validates and stores patch, then applies it to the cache
// and classifier.
func (s *sorter) UpdateSettings(ctx context.Context, patch SettingsPatch) (config.Settings, error) {
	logger := contextutil.LoggerFromContext(ctx)

	change := func(st *config.Settings) {
		if patch.PersistAnalysisCache != nil {
			st.PersistAnalysisCache = *patch.PersistAnalysisCache
		}
		if patch.SuggestionPrecache != nil {
			st.SuggestionPrecache = *patch.SuggestionPrecache
		}
		if patch.TargetFolders != nil {
			st.TargetFolders = slices.Clone(*patch.TargetFolders)
		}
		if patch.MaxSuggestions != nil {
			st.MaxSuggestions = *patch.MaxSuggestions
		}
	}

	candidate := s.settings.Get()
	change(&candidate)
	if err := candidate.Validate(); err != nil {
		logger.WarnContext(ctx, "rejected settings update", "error", err)
		return config.Settings{}, &ValidationError{Field: "settings", Message: err.Error()}
	}

	updated, err := s.settings.Update(change)
	if err != nil {
		logger.ErrorContext(ctx, "failed to save settings", "error", err)
		return config.Settings{}, WrapError(err, "failed to save settings")
	}
	s.apply(updated)
	logger.InfoContext(ctx, "settings updated",
		"persist_analysis_cache", updated.PersistAnalysisCache,
		"suggestion_precache", updated.SuggestionPrecache,
		"target_folders", len(updated.TargetFolders),
		"max_suggestions", updated.MaxSuggestions)
	return updated, nil
}

// Subscribe streams cache events until the returned cancel is called.
func (s *sorter) Subscribe() (<-chan analysis.Event, func()) {
	return s.cache.Subscribe()
}

func (s *sorter) limit(max int) int {
	if max <= 0 {
		max = s.settings.Get().MaxSuggestions
	}
	return min(max, config.MaxSuggestionsLimit)
}

// documentPath validates an absolute document path and cleans it.
func documentPath(field, path string) (string, error) {
	if path == "" {
		return "", &ValidationError{Field: field, Message: "cannot be empty"}
	}
	if !filepath.IsAbs(path) {
		return "", &ValidationError{Field: field, Message: "must be an absolute path"}
	}
	return filepath.Clean(path), nil
}

