package handlers

import (
	"net/http"

	"docsorter/internal/contextutil"
	"docsorter/internal/service"
)

// SettingsHandler reads and updates runtime settings.
type SettingsHandler struct {
	sorter service.Sorter
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(sorter service.Sorter) *SettingsHandler {
	return &SettingsHandler{sorter: sorter}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.sorter.Settings())
}

// Update handles PATCH /api/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var patch service.SettingsPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.sorter.UpdateSettings(ctx, patch)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to update settings")
		return
	}
	writeJSON(ctx, w, http.StatusOK, updated)
}
