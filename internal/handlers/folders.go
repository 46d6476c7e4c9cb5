package handlers

import (
	"net/http"
	"time"

	"docsorter/internal/classifier"
	"docsorter/internal/contextutil"
	"docsorter/internal/service"
)

// FolderHandler serves destination folder suggestions and learning.
type FolderHandler struct {
	sorter service.Sorter
}

// NewFolderHandler creates a new FolderHandler.
func NewFolderHandler(sorter service.Sorter) *FolderHandler {
	return &FolderHandler{sorter: sorter}
}

// SuggestRequest is the payload of POST /api/folders/suggest.
type SuggestRequest struct {
	Path string `json:"path"`
	Max  int    `json:"max"`
}

// SuggestResponse lists ranked destination folders.
type SuggestResponse struct {
	Suggestions []classifier.Suggestion `json:"suggestions"`
}

// LearnRequest is the payload of POST /api/folders/learn.
type LearnRequest struct {
	Path         string `json:"path"`
	TargetFolder string `json:"target_folder"`
	NewFilename  string `json:"new_filename,omitempty"`
}

// LearnResponse describes the stored training entry.
type LearnResponse struct {
	ID           string `json:"id"`
	TargetFolder string `json:"target_folder"`
	RelativePath string `json:"relative_path"`
	CreatedAt    string `json:"created_at"`
}

// Suggest handles POST /api/folders/suggest.
func (h *FolderHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SuggestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	suggestions, err := h.sorter.SuggestFolders(ctx, service.FolderRequest{Path: req.Path, Max: req.Max})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to suggest folders")
		return
	}
	writeJSON(ctx, w, http.StatusOK, SuggestResponse{Suggestions: nonNil(suggestions)})
}

// Subfolders handles GET /api/folders/subfolders?parent=...&max=...
func (h *FolderHandler) Subfolders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := queryInt(r, "max")
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid request")
		return
	}
	suggestions, err := h.sorter.SuggestSubfolders(ctx, r.URL.Query().Get("parent"), limit)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to suggest subfolders")
		return
	}
	writeJSON(ctx, w, http.StatusOK, SuggestResponse{Suggestions: nonNil(suggestions)})
}

// Learn handles POST /api/folders/learn.
func (h *FolderHandler) Learn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LearnRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.sorter.Learn(ctx, service.LearnRequest{
		Path:         req.Path,
		TargetFolder: req.TargetFolder,
		NewFilename:  req.NewFilename,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to learn sorting decision")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, LearnResponse{
		ID:           entry.ID,
		TargetFolder: entry.TargetFolderPath,
		RelativePath: entry.TargetRelativePath,
		CreatedAt:    entry.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func nonNil(s []classifier.Suggestion) []classifier.Suggestion {
	if s == nil {
		return []classifier.Suggestion{}
	}
	return s
}
