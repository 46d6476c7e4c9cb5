package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analysis_store.go -package=mocks docsorter/internal/storage AnalysisStore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"

	"docsorter/internal/contextutil"
)

// AnalysisStore defines the interface for persisted analysis records.
type AnalysisStore interface {
	// Load returns every persisted record whose document still exists
	// with an unchanged modification time.
	Load(ctx context.Context) (map[string]*AnalysisRecord, error)
	// Upsert inserts a record or replaces the existing row for its path.
	Upsert(ctx context.Context, rec *AnalysisRecord) error
	// Delete removes the row for path. Missing rows are not an error.
	Delete(ctx context.Context, path string) error
	// DeleteAll removes every row.
	DeleteAll(ctx context.Context) error
	// Rename drops the row for oldPath and stores rec under its own path.
	Rename(ctx context.Context, oldPath string, rec *AnalysisRecord) error
}

// AnalysisRepo provides methods for analysis cache rows.
// It implements the AnalysisStore interface.
type AnalysisRepo struct {
	db *sql.DB
}

// NewAnalysisRepo creates a new AnalysisRepo.
func NewAnalysisRepo(db *sql.DB) *AnalysisRepo {
	return &AnalysisRepo{db: db}
}

const upsertAnalysisSQL = `INSERT INTO analysis_cache
	(path, extracted_text, keywords, dates, analyzed_at, file_modified, suggestions, suggestions_fetched)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (path) DO UPDATE SET
	extracted_text = excluded.extracted_text,
	keywords = excluded.keywords,
	dates = excluded.dates,
	analyzed_at = excluded.analyzed_at,
	file_modified = excluded.file_modified,
	suggestions = excluded.suggestions,
	suggestions_fetched = excluded.suggestions_fetched`

// Load reads all rows and drops those that no longer describe the file on disk.
// Stale rows are deleted from the table as well.
func (r *AnalysisRepo) Load(ctx context.Context) (map[string]*AnalysisRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	rows, err := r.db.QueryContext(ctx,
		`SELECT path, extracted_text, keywords, dates, analyzed_at, file_modified, suggestions, suggestions_fetched
		 FROM analysis_cache`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis cache: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make(map[string]*AnalysisRecord)
	var stale []string

	for rows.Next() {
		var (
			rec         AnalysisRecord
			keywords    string
			dates       string
			analyzedAt  string
			suggestions sql.NullString
			fetched     int
		)
		if err := rows.Scan(&rec.Path, &rec.ExtractedText, &keywords, &dates, &analyzedAt,
			&rec.FileModifiedAt, &suggestions, &fetched); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}

		current, err := ModTime(rec.Path)
		if err != nil || current != rec.FileModifiedAt {
			stale = append(stale, rec.Path)
			continue
		}

		rec.Keywords = decodeStrings(keywords)
		rec.Dates = decodeDates(dates)
		rec.AnalyzedAt, err = parseTime(analyzedAt)
		if err != nil {
			logger.WarnContext(ctx, "invalid analyzed_at in cache row", "path", rec.Path, "error", err)
		}
		rec.Suggestions = decodeSuggestions(suggestions.String)
		rec.SuggestionsFetched = fetched != 0

		records[rec.Path] = &rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analysis rows: %w", err)
	}
	_ = rows.Close()

	for _, path := range stale {
		if err := r.Delete(ctx, path); err != nil {
			logger.WarnContext(ctx, "failed to delete stale cache row", "path", path, "error", err)
		}
	}
	if len(stale) > 0 {
		logger.DebugContext(ctx, "dropped stale cache rows", "count", len(stale))
	}

	return records, nil
}

// Upsert inserts a record or replaces the existing row for its path.
func (r *AnalysisRepo) Upsert(ctx context.Context, rec *AnalysisRecord) error {
	args, err := analysisArgs(rec)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, upsertAnalysisSQL, args...); err != nil {
		return fmt.Errorf("failed to upsert analysis record: %w", err)
	}
	return nil
}

// Delete removes the row for path.
func (r *AnalysisRepo) Delete(ctx context.Context, path string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM analysis_cache WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to delete analysis record: %w", err)
	}
	return nil
}

// DeleteAll removes every row.
func (r *AnalysisRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM analysis_cache"); err != nil {
		return fmt.Errorf("failed to clear analysis cache: %w", err)
	}
	return nil
}

// Rename moves a row to a new path in a single transaction.
func (r *AnalysisRepo) Rename(ctx context.Context, oldPath string, rec *AnalysisRecord) error {
	args, err := analysisArgs(rec)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM analysis_cache WHERE path = ?", oldPath); err != nil {
		return fmt.Errorf("failed to delete old analysis record: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsertAnalysisSQL, args...); err != nil {
		return fmt.Errorf("failed to store renamed analysis record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rename: %w", err)
	}
	return nil
}

func analysisArgs(rec *AnalysisRecord) ([]any, error) {
	keywords, err := json.Marshal(nonNil(rec.Keywords))
	if err != nil {
		return nil, fmt.Errorf("failed to encode keywords: %w", err)
	}
	dates, err := json.Marshal(encodeDates(rec.Dates))
	if err != nil {
		return nil, fmt.Errorf("failed to encode dates: %w", err)
	}
	suggestions, err := json.Marshal(nonNil(rec.Suggestions))
	if err != nil {
		return nil, fmt.Errorf("failed to encode suggestions: %w", err)
	}
	fetched := 0
	if rec.SuggestionsFetched {
		fetched = 1
	}
	return []any{
		rec.Path, rec.ExtractedText, string(keywords), string(dates),
		formatTime(rec.AnalyzedAt), rec.FileModifiedAt, string(suggestions), fetched,
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func encodeDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(DateLayout))
	}
	return out
}

func decodeDates(raw string) []time.Time {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := time.Parse(DateLayout, v)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

func decodeStrings(raw string) []string {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}

// decodeSuggestions treats unreadable data as "no suggestions".
func decodeSuggestions(raw string) []NameSuggestion {
	if raw == "" {
		return nil
	}
	var values []NameSuggestion
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		slog.Debug("ignoring malformed suggestion list", "error", err)
		return nil
	}
	return values
}
