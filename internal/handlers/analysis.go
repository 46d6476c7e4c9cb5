package handlers

import (
	"net/http"
	"time"

	"docsorter/internal/contextutil"
	"docsorter/internal/service"
	"docsorter/internal/storage"
)

// excerptRunes bounds the text excerpt returned with an analysis.
const excerptRunes = 500

// AnalysisHandler serves the analysis cache endpoints.
type AnalysisHandler struct {
	sorter service.Sorter
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(sorter service.Sorter) *AnalysisHandler {
	return &AnalysisHandler{sorter: sorter}
}

// AnalyzeRequest is the payload of POST /api/analysis.
type AnalyzeRequest struct {
	Path   string `json:"path"`
	Urgent bool   `json:"urgent"`
	Wait   bool   `json:"wait"`
}

// AnalysisResponse describes a cached analysis.
type AnalysisResponse struct {
	Path               string                   `json:"path"`
	Pending            bool                     `json:"pending"`
	Analyzing          bool                     `json:"analyzing,omitempty"`
	Keywords           []string                 `json:"keywords,omitempty"`
	Dates              []string                 `json:"dates,omitempty"`
	Excerpt            string                   `json:"excerpt,omitempty"`
	TextLength         int                      `json:"text_length"`
	AnalyzedAt         string                   `json:"analyzed_at,omitempty"`
	Suggestions        []storage.NameSuggestion `json:"suggestions,omitempty"`
	SuggestionsFetched bool                     `json:"suggestions_fetched"`
}

// PreCacheRequest is the payload of POST /api/analysis/precache. An empty
// path list warms the inbox.
type PreCacheRequest struct {
	Paths []string `json:"paths"`
}

// PreCacheResponse reports how many documents were queued.
type PreCacheResponse struct {
	Queued int `json:"queued"`
}

// MoveRequest is the payload of POST /api/analysis/move.
type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MoveResponse reports whether a cached analysis followed the document.
type MoveResponse struct {
	Migrated bool `json:"migrated"`
}

// FilenamesResponse lists filename proposals.
type FilenamesResponse struct {
	Path        string                   `json:"path"`
	Suggestions []storage.NameSuggestion `json:"suggestions"`
}

func toAnalysisResponse(path string, rec *storage.AnalysisRecord) AnalysisResponse {
	if rec == nil {
		return AnalysisResponse{Path: path, Pending: true}
	}
	resp := AnalysisResponse{
		Path:               rec.Path,
		Keywords:           rec.Keywords,
		Excerpt:            excerpt(rec.ExtractedText),
		TextLength:         len([]rune(rec.ExtractedText)),
		Suggestions:        rec.Suggestions,
		SuggestionsFetched: rec.SuggestionsFetched,
	}
	for _, d := range rec.Dates {
		resp.Dates = append(resp.Dates, d.Format(storage.DateLayout))
	}
	if !rec.AnalyzedAt.IsZero() {
		resp.AnalyzedAt = rec.AnalyzedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func excerpt(text string) string {
	r := []rune(text)
	if len(r) <= excerptRunes {
		return text
	}
	return string(r[:excerptRunes])
}

// Analyze handles POST /api/analysis. A queued analysis answers 202.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.sorter.Analyze(ctx, service.AnalyzeRequest{Path: req.Path, Urgent: req.Urgent, Wait: req.Wait})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to analyze document")
		return
	}

	status := http.StatusOK
	if resp.Pending {
		status = http.StatusAccepted
	}
	out := toAnalysisResponse(req.Path, resp.Record)
	out.Analyzing = resp.Analyzing
	writeJSON(ctx, w, status, out)
}

// PreCache handles POST /api/analysis/precache.
func (h *AnalysisHandler) PreCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PreCacheRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var (
		n   int
		err error
	)
	if len(req.Paths) == 0 {
		n, err = h.sorter.PreCacheInbox(ctx)
	} else {
		n, err = h.sorter.PreCache(ctx, req.Paths)
	}
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to queue documents")
		return
	}
	writeJSON(ctx, w, http.StatusAccepted, PreCacheResponse{Queued: n})
}

// Move handles POST /api/analysis/move.
func (h *AnalysisHandler) Move(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MoveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	migrated, err := h.sorter.RecordMove(ctx, service.MoveRequest{From: req.From, To: req.To})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to record move")
		return
	}
	writeJSON(ctx, w, http.StatusOK, MoveResponse{Migrated: migrated})
}

// Clear handles DELETE /api/analysis?path=...&persistent=true.
func (h *AnalysisHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.sorter.ClearCache(ctx, service.ClearRequest{
		Path:       r.URL.Query().Get("path"),
		Persistent: queryBool(r, "persistent"),
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to clear cache")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/analysis/stats.
func (h *AnalysisHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.sorter.Stats(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to collect stats")
		return
	}
	writeJSON(ctx, w, http.StatusOK, stats)
}

// Filenames handles GET /api/analysis/filenames?path=...
func (h *AnalysisHandler) Filenames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	path := r.URL.Query().Get("path")

	suggestions, err := h.sorter.SuggestFilenames(ctx, path)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to suggest filenames")
		return
	}
	writeJSON(ctx, w, http.StatusOK, FilenamesResponse{Path: path, Suggestions: suggestions})
}
