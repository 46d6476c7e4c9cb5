package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

var envVars = []string{
	"DB_PATH", "SETTINGS_PATH", "INBOX_PATH", "TARGET_FOLDERS", "API_PORT",
	"LOG_LEVEL", "LOG_FORMAT", "PERSIST_ANALYSIS_CACHE", "SUGGESTION_PRECACHE",
	"MAX_SUGGESTIONS", "WORKER_POLL_INTERVAL", "SHUTDOWN_TIMEOUT", "WATCH_INBOX",
	"LLM_PROVIDER", "LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL",
}

// clearEnv empties every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     string
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.APIPort != "9000" || cfg.LLMProvider != ProviderNone || cfg.MaxSuggestions != 5 {
					t.Errorf("unexpected defaults: %+v", cfg)
				}
				if !cfg.PersistCache || !cfg.PrecacheNames || !cfg.WatchInbox {
					t.Errorf("boolean defaults should be true: %+v", cfg)
				}
				if cfg.PollInterval != time.Second || cfg.ShutdownTimeout != 2*time.Second {
					t.Errorf("unexpected durations: %v, %v", cfg.PollInterval, cfg.ShutdownTimeout)
				}
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"TARGET_FOLDERS":         "/docs/Finanzen" + string(os.PathListSeparator) + " /docs/Privat/ ",
				"PERSIST_ANALYSIS_CACHE": "false",
				"MAX_SUGGESTIONS":        "8",
				"WORKER_POLL_INTERVAL":   "250ms",
				"LLM_PROVIDER":           "LlamaCPP",
				"LOG_LEVEL":              "DEBUG",
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if want := []string{"/docs/Finanzen", "/docs/Privat"}; !reflect.DeepEqual(cfg.TargetFolders, want) {
					t.Errorf("TargetFolders = %v, want %v", cfg.TargetFolders, want)
				}
				if cfg.PersistCache {
					t.Error("PersistCache = true, want false")
				}
				if cfg.MaxSuggestions != 8 || cfg.PollInterval != 250*time.Millisecond {
					t.Errorf("MaxSuggestions = %d, PollInterval = %v", cfg.MaxSuggestions, cfg.PollInterval)
				}
				if cfg.LLMProvider != ProviderLlamaCPP || cfg.LogLevel != "debug" {
					t.Errorf("LLMProvider = %q, LogLevel = %q", cfg.LLMProvider, cfg.LogLevel)
				}
			},
		},
		{name: "bad integer", env: map[string]string{"MAX_SUGGESTIONS": "many"}, wantErr: "MAX_SUGGESTIONS"},
		{name: "zero suggestions", env: map[string]string{"MAX_SUGGESTIONS": "0"}, wantErr: "MAX_SUGGESTIONS"},
		{name: "bad boolean", env: map[string]string{"WATCH_INBOX": "sometimes"}, wantErr: "WATCH_INBOX"},
		{name: "bad duration", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}, wantErr: "SHUTDOWN_TIMEOUT"},
		{name: "unknown provider", env: map[string]string{"LLM_PROVIDER": "magic"}, wantErr: "LLM_PROVIDER"},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}, wantErr: "LOG_LEVEL"},
		{name: "bad log format", env: map[string]string{"LOG_FORMAT": "xml"}, wantErr: "LOG_FORMAT"},
		{name: "openai without key", env: map[string]string{"LLM_PROVIDER": "openai"}, wantErr: "LLM_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "test.db"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want mention of %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.checkConfig(t, cfg)
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "nested", "data", "test.db")
	t.Setenv("DB_PATH", dbPath)

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Errorf("data directory was not created: %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("DOCSORTER_TEST_VAR", "set")
	if got := getEnv("DOCSORTER_TEST_VAR", "default"); got != "set" {
		t.Errorf("getEnv() = %q, want set", got)
	}
	if got := getEnv("DOCSORTER_TEST_UNSET", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want default", got)
	}
}

func TestSettingsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.yaml")
	defaults := Settings{PersistAnalysisCache: true, SuggestionPrecache: true, MaxSuggestions: 5}

	store, err := LoadSettings(path, defaults)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got := store.Get(); !reflect.DeepEqual(got, defaults) {
		t.Errorf("Get() = %+v, want defaults %+v", got, defaults)
	}

	updated, err := store.Update(func(s *Settings) {
		s.SuggestionPrecache = false
		s.TargetFolders = []string{"/docs/Finanzen/"}
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.SuggestionPrecache || updated.TargetFolders[0] != "/docs/Finanzen" {
		t.Errorf("Update() = %+v", updated)
	}

	// Invalid updates are rejected and leave the file alone
	if _, err := store.Update(func(s *Settings) { s.MaxSuggestions = 0 }); err == nil {
		t.Error("Update() with max_suggestions 0 succeeded")
	}
	if _, err := store.Update(func(s *Settings) { s.TargetFolders = []string{"relative/dir"} }); err == nil {
		t.Error("Update() with relative folder succeeded")
	}

	reloaded, err := LoadSettings(path, Settings{MaxSuggestions: 3})
	if err != nil {
		t.Fatalf("LoadSettings() reload error = %v", err)
	}
	got := reloaded.Get()
	if got.SuggestionPrecache || !got.PersistAnalysisCache || got.MaxSuggestions != 5 {
		t.Errorf("reloaded settings = %+v", got)
	}
	if !reflect.DeepEqual(got.TargetFolders, []string{"/docs/Finanzen"}) {
		t.Errorf("reloaded TargetFolders = %v", got.TargetFolders)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "persist_analysis_cache: [oops"},
		{name: "invalid values", content: "max_suggestions: 99\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if _, err := LoadSettings(path, Settings{MaxSuggestions: 5}); err == nil {
				t.Error("LoadSettings() error = nil, want error")
			}
		})
	}
}
