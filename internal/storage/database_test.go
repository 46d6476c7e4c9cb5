package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    dbPath,
			wantErr: false,
		},
		{
			name:    "invalid path",
			path:    "/invalid/path/to/db.db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
				return
			}

			if db.Stats().MaxOpenConnections != 25 {
				t.Errorf("New() MaxOpenConnections = %v, want 25", db.Stats().MaxOpenConnections)
			}

			var mode string
			if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
				t.Fatalf("failed to read journal mode: %v", err)
			}
			if mode != "wal" {
				t.Errorf("journal_mode = %q, want wal", mode)
			}

			_ = db.Close()
		})
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	for _, table := range []string{"analysis_cache", "sorting_history", "target_folders", "rename_history"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrate_AddsColumnsToOldSchema(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "old.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	// Layout written by versions without suggestion support
	old := []string{
		`CREATE TABLE analysis_cache (
			path TEXT PRIMARY KEY,
			extracted_text TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '[]',
			dates TEXT NOT NULL DEFAULT '[]',
			analyzed_at TEXT NOT NULL,
			file_modified REAL NOT NULL
		)`,
		`INSERT INTO analysis_cache (path, extracted_text, keywords, dates, analyzed_at, file_modified)
		 VALUES ('/docs/a.txt', 'hello', '["invoice"]', '["2025-01-15"]', '2025-01-20T10:00:00Z', 12.5)`,
		`CREATE TABLE target_folders (
			path TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			usage_count INTEGER NOT NULL DEFAULT 0,
			last_used_at TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range old {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to prepare old schema: %v", err)
		}
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	for _, m := range columnMigrations {
		ok, err := hasColumn(db, m.table, m.column)
		if err != nil {
			t.Fatalf("hasColumn() error = %v", err)
		}
		if !ok {
			t.Errorf("column %s.%s was not added", m.table, m.column)
		}
	}

	var (
		text        string
		suggestions string
		fetched     int
	)
	err = db.QueryRow("SELECT extracted_text, suggestions, suggestions_fetched FROM analysis_cache WHERE path = '/docs/a.txt'").
		Scan(&text, &suggestions, &fetched)
	if err != nil {
		t.Fatalf("failed to read migrated row: %v", err)
	}
	if text != "hello" || suggestions != "[]" || fetched != 0 {
		t.Errorf("migrated row = (%q, %q, %d), want (hello, [], 0)", text, suggestions, fetched)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		zero    bool
	}{
		{name: "empty", input: "", zero: true},
		{name: "rfc3339", input: "2025-01-15T10:00:00.5Z"},
		{name: "sqlite datetime", input: "2025-01-15 10:00:00"},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.IsZero() != tt.zero {
				t.Errorf("parseTime() zero = %v, want %v", got.IsZero(), tt.zero)
			}
		})
	}
}
