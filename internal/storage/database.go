package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// WAL mode and a busy timeout let the analysis worker write while the
// startup load is still reading.
func New(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// columnMigration is an optional column added after the initial schema.
type columnMigration struct {
	table      string
	column     string
	definition string
}

// Added columns always carry a default so rows written by older versions stay loadable.
var columnMigrations = []columnMigration{
	{"analysis_cache", "suggestions", "TEXT NOT NULL DEFAULT '[]'"},
	{"analysis_cache", "suggestions_fetched", "INTEGER NOT NULL DEFAULT 0"},
	{"sorting_history", "target_relative_path", "TEXT NOT NULL DEFAULT ''"},
	{"target_folders", "relative_path", "TEXT NOT NULL DEFAULT ''"},
	{"target_folders", "parent_path", "TEXT NOT NULL DEFAULT ''"},
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS analysis_cache (
			path TEXT PRIMARY KEY,
			extracted_text TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '[]',
			dates TEXT NOT NULL DEFAULT '[]',
			analyzed_at TEXT NOT NULL,
			file_modified REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sorting_history (
			id TEXT PRIMARY KEY,
			original_filename TEXT NOT NULL,
			original_path TEXT NOT NULL,
			target_folder_path TEXT NOT NULL,
			target_folder_name TEXT NOT NULL,
			extracted_text TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '[]',
			detected_date TEXT NOT NULL DEFAULT '',
			new_filename TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			confidence REAL NOT NULL DEFAULT 1.0
		);`,
		`CREATE TABLE IF NOT EXISTS target_folders (
			path TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			usage_count INTEGER NOT NULL DEFAULT 0,
			last_used_at TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS rename_history (
			id TEXT PRIMARY KEY,
			original_filename TEXT NOT NULL,
			new_filename TEXT NOT NULL,
			keywords TEXT NOT NULL DEFAULT '[]',
			detected_date TEXT NOT NULL DEFAULT '',
			target_folder TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	for _, m := range columnMigrations {
		exists, err := hasColumn(db, m.table, m.column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.table, m.column, m.definition)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to add column %s.%s: %w", m.table, m.column, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_sorting_history_folder ON sorting_history(target_folder_path);`,
		`CREATE INDEX IF NOT EXISTS idx_target_folders_parent ON target_folders(parent_path);`,
	}
	for _, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func hasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to read table info for %s: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("failed to scan table info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		// Rows written by SQLite defaults use the DATETIME layout
		t, err = time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
		}
	}
	return t, nil
}
