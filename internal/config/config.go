// Package config loads process configuration from the environment and
// keeps runtime settings in a YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM provider names.
const (
	ProviderNone     = "none"
	ProviderLlamaCPP = "llamacpp"
	ProviderOpenAI   = "openai"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath          string
	SettingsPath    string
	InboxPath       string
	TargetFolders   []string
	APIPort         string
	LogLevel        string
	LogFormat       string
	PersistCache    bool
	PrecacheNames   bool
	MaxSuggestions  int
	PollInterval    time.Duration
	ShutdownTimeout time.Duration
	WatchInbox      bool
	LLMProvider     string
	LLMBaseURL      string
	LLMAPIKey       string
	LLMModelName    string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		DBPath:        getEnv("DB_PATH", "./data/docsorter.db"),
		SettingsPath:  getEnv("SETTINGS_PATH", "./data/settings.yaml"),
		InboxPath:     getEnv("INBOX_PATH", ""),
		TargetFolders: splitPathList(getEnv("TARGET_FOLDERS", "")),
		APIPort:       getEnv("API_PORT", "9000"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", ProviderNone)),
		LLMBaseURL:    getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMAPIKey:     getEnv("LLM_API_KEY", ""),
		LLMModelName:  getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
	}

	var err error
	if cfg.PersistCache, err = getBool("PERSIST_ANALYSIS_CACHE", true); err != nil {
		return nil, err
	}
	if cfg.PrecacheNames, err = getBool("SUGGESTION_PRECACHE", true); err != nil {
		return nil, err
	}
	if cfg.WatchInbox, err = getBool("WATCH_INBOX", true); err != nil {
		return nil, err
	}
	if cfg.MaxSuggestions, err = getInt("MAX_SUGGESTIONS", 5); err != nil {
		return nil, err
	}
	if cfg.MaxSuggestions <= 0 {
		return nil, fmt.Errorf("MAX_SUGGESTIONS must be greater than 0")
	}
	if cfg.PollInterval, err = getDuration("WORKER_POLL_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 2*time.Second); err != nil {
		return nil, err
	}

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json: got %q", cfg.LogFormat)
	}

	switch cfg.LLMProvider {
	case ProviderNone, ProviderLlamaCPP, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be one of %s, %s, %s: got %q", ProviderNone, ProviderLlamaCPP, ProviderOpenAI, cfg.LLMProvider)
	}
	if cfg.LLMProvider == ProviderOpenAI && cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required for the openai provider")
	}

	// Create the data directory for the database file
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: got %q", c.LogLevel)
	}
	return level, nil
}

// Defaults returns the runtime settings implied by the environment.
func (c *Config) Defaults() Settings {
	return Settings{
		PersistAnalysisCache: c.PersistCache,
		SuggestionPrecache:   c.PrecacheNames,
		TargetFolders:        c.TargetFolders,
		MaxSuggestions:       c.MaxSuggestions,
	}
}

// loadDotEnv loads .env from the current directory, then from the first
// parent that has one.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}

func splitPathList(raw string) []string {
	var out []string
	for _, p := range filepath.SplitList(raw) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, filepath.Clean(p))
		}
	}
	return out
}
