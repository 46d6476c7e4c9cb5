// Package app wires the storage, analysis cache, classifier and language
// model client into a service.Sorter shared by the server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"docsorter/internal/analysis"
	"docsorter/internal/classifier"
	"docsorter/internal/config"
	"docsorter/internal/extract"
	"docsorter/internal/inbox"
	"docsorter/internal/llm"
	"docsorter/internal/service"
	"docsorter/internal/storage"
)

// modelLoadTimeout bounds the startup wait for a llama.cpp model.
const modelLoadTimeout = 2 * time.Minute

// App holds the wired components.
type App struct {
	Config     *config.Config
	DB         *sql.DB
	Cache      *analysis.Cache
	Classifier *classifier.Classifier
	Settings   *config.SettingsStore
	Sorter     service.Sorter
	// Model is set for the llama.cpp provider only.
	Model *llm.Client
	// Inbox is nil when INBOX_PATH is unset.
	Inbox *inbox.Scanner
}

// SetupLogging installs the default slog logger described by cfg.
func SetupLogging(cfg *config.Config) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("logging configured", "level", level.String(), "format", cfg.LogFormat)
	return nil
}

// New opens the database, loads settings and starts the analysis workers.
// Close must be called to stop them.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("database initialized", "path", cfg.DBPath)

	settings, err := config.LoadSettings(cfg.SettingsPath, cfg.Defaults())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	current := settings.Get()

	a := &App{Config: cfg, DB: db, Settings: settings}

	chat, err := a.newChat(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	var provider analysis.SuggestionProvider
	if chat != nil {
		provider = llm.NewFilenameSuggester(chat, slog.Default())
	}

	a.Cache = analysis.NewCache(extract.NewTextExtractor(), provider, storage.NewAnalysisRepo(db), analysis.Options{
		Persist:            current.PersistAnalysisCache,
		SuggestionPrecache: current.SuggestionPrecache,
		PollInterval:       cfg.PollInterval,
		StopTimeout:        cfg.ShutdownTimeout,
	})
	if err := a.Cache.Start(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	training := storage.NewTrainingRepo(db)
	a.Classifier, err = classifier.New(ctx, training, current.TargetFolders)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to train classifier: %w", err)
	}

	deps := service.Deps{
		Cache:      a.Cache,
		Classifier: a.Classifier,
		Provider:   provider,
		History:    training,
		Settings:   settings,
	}
	if chat != nil {
		deps.Advisor = llm.NewFolderAdvisor(chat, slog.Default())
	}
	if meter, ok := chat.(service.TokenMeter); ok {
		deps.Tokens = meter
	}
	if cfg.InboxPath != "" {
		a.Inbox = inbox.NewScanner(cfg.InboxPath)
		deps.Inbox = a.Inbox
	}
	a.Sorter = service.NewSorter(deps)

	slog.Info("document sorter ready",
		"provider", cfg.LLMProvider,
		"persist_analysis_cache", current.PersistAnalysisCache,
		"suggestion_precache", current.SuggestionPrecache,
		"target_folders", len(current.TargetFolders),
		"classifier_state", a.Classifier.State().String())
	return a, nil
}

// newChat builds the chat client shared by filename and folder suggestions.
// It returns nil when no provider is configured.
func (a *App) newChat(ctx context.Context) (llm.Chatter, error) {
	cfg := a.Config
	var chat llm.Chatter

	switch cfg.LLMProvider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderLlamaCPP:
		client := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
		loadCtx, cancel := context.WithTimeout(ctx, modelLoadTimeout)
		defer cancel()
		if err := client.EnsureModel(loadCtx); err != nil {
			// Suggestions fail per request until the model is loaded; the rest keeps working
			slog.Warn("language model not ready", "model", cfg.LLMModelName, "error", err)
		}
		a.Model = client
		chat = client
	case config.ProviderOpenAI:
		chat = llm.NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}

	slog.Debug("language model configured", "provider", cfg.LLMProvider, "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	return chat, nil
}

// Close stops the workers and closes the database.
func (a *App) Close() error {
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
