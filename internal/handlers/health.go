package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"docsorter/internal/contextutil"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ModelChecker reports whether the configured language model is loaded.
type ModelChecker interface {
	ModelLoaded(ctx context.Context) (bool, error)
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 Pinger
	model              ModelChecker
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. A nil model skips the
// language model check.
func NewHealthHandler(db Pinger, model ModelChecker) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		model:              model,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// Returns 200 OK when healthy or degraded, 503 Service Unavailable when the
// database cannot be reached. A missing language model only degrades the
// service since filenames fall back to local suggestions.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string
	status, httpStatus := "healthy", http.StatusOK

	if h.checkDatabase(checkCtx, logger) {
		checks["database"] = "ok"
	} else {
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
		status, httpStatus = "unhealthy", http.StatusServiceUnavailable
	}

	switch {
	case h.model == nil:
		checks["language_model"] = "disabled"
	case h.checkModel(checkCtx, logger):
		checks["language_model"] = "ok"
	default:
		checks["language_model"] = "error"
		issues = append(issues, "language_model_unavailable")
		if status == "healthy" {
			status = "degraded"
		}
	}

	writeJSON(ctx, w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context, logger *slog.Logger) bool {
	if err := h.db.PingContext(ctx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		return false
	}
	return true
}

func (h *HealthHandler) checkModel(ctx context.Context, logger *slog.Logger) bool {
	loaded, err := h.model.ModelLoaded(ctx)
	if err != nil {
		logger.WarnContext(ctx, "language model health check failed", "error", err)
		return false
	}
	if !loaded {
		logger.WarnContext(ctx, "language model not loaded")
	}
	return loaded
}
