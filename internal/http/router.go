package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docsorter/internal/handlers"
	"docsorter/internal/metrics"
	"docsorter/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Sorter service.Sorter
	DB     handlers.Pinger
	// Model is optional; nil disables the language model health check.
	Model handlers.ModelChecker
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	analysisHandler := handlers.NewAnalysisHandler(deps.Sorter)
	folderHandler := handlers.NewFolderHandler(deps.Sorter)
	settingsHandler := handlers.NewSettingsHandler(deps.Sorter)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.DB, deps.Model))
		r.Method(http.MethodGet, "/events", handlers.NewEventsHandler(deps.Sorter))

		r.Route("/analysis", func(r chi.Router) {
			r.Post("/", analysisHandler.Analyze)
			r.Delete("/", analysisHandler.Clear)
			r.Post("/precache", analysisHandler.PreCache)
			r.Post("/move", analysisHandler.Move)
			r.Get("/stats", analysisHandler.Stats)
			r.Get("/filenames", analysisHandler.Filenames)
		})

		r.Route("/folders", func(r chi.Router) {
			r.Post("/suggest", folderHandler.Suggest)
			r.Get("/subfolders", folderHandler.Subfolders)
			r.Post("/learn", folderHandler.Learn)
		})

		r.Get("/settings", settingsHandler.Get)
		r.Patch("/settings", settingsHandler.Update)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
