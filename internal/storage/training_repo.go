package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_training_store.go -package=mocks docsorter/internal/storage TrainingStore

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// TrainingStore defines the interface for sorting decisions and folder usage.
type TrainingStore interface {
	// AddEntry stores a sorting decision and bumps the usage of its target folder.
	AddEntry(ctx context.Context, entry *TrainingEntry) (*TrainingEntry, error)
	// ListEntries returns all sorting decisions, oldest first.
	ListEntries(ctx context.Context) ([]TrainingEntry, error)
	// Count returns the number of sorting decisions.
	Count(ctx context.Context) (int, error)
	// MostUsedFolders returns up to limit folders ordered by usage.
	MostUsedFolders(ctx context.Context, limit int) ([]FolderUsage, error)
	// SubfoldersForParent returns used folders directly below parentPath, ordered by usage.
	SubfoldersForParent(ctx context.Context, parentPath string) ([]FolderUsage, error)
	// FolderStats returns every known folder ordered by usage.
	FolderStats(ctx context.Context) ([]FolderUsage, error)
}

// TrainingRepo provides methods for the sorting history and folder statistics.
// It implements the TrainingStore interface.
type TrainingRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewTrainingRepo creates a new TrainingRepo.
func NewTrainingRepo(db *sql.DB) *TrainingRepo {
	return &TrainingRepo{db: db, now: time.Now}
}

// AddEntry stores entry with a fresh ID and creation time. Confidence is
// always 1.0 since the entry is a real user decision. Folder usage is
// created or incremented in the same transaction, and a rename is recorded
// when the entry carries a new filename.
func (r *TrainingRepo) AddEntry(ctx context.Context, entry *TrainingEntry) (*TrainingEntry, error) {
	if entry.TargetFolderPath == "" {
		return nil, fmt.Errorf("target folder path is required")
	}

	stored := *entry
	stored.ID = uuid.New().String()
	stored.CreatedAt = r.now().UTC()
	stored.Confidence = 1.0
	stored.TargetFolderPath = filepath.Clean(stored.TargetFolderPath)
	if stored.TargetFolderName == "" {
		stored.TargetFolderName = filepath.Base(stored.TargetFolderPath)
	}

	keywords, err := json.Marshal(nonNil(stored.Keywords))
	if err != nil {
		return nil, fmt.Errorf("failed to encode keywords: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sorting_history (id, original_filename, original_path, target_folder_path,
		 target_folder_name, target_relative_path, extracted_text, keywords, detected_date,
		 new_filename, created_at, confidence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.OriginalFilename, stored.OriginalPath, stored.TargetFolderPath,
		stored.TargetFolderName, stored.TargetRelativePath, stored.ExtractedText, string(keywords),
		stored.DetectedDate, stored.NewFilename, formatTime(stored.CreatedAt), stored.Confidence,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sorting entry: %w", err)
	}

	// relative_path is only filled in once, by the first decision that knows it
	_, err = tx.ExecContext(ctx,
		`INSERT INTO target_folders (path, name, relative_path, parent_path, usage_count, last_used_at)
		 VALUES (?, ?, ?, ?, 1, ?)
		 ON CONFLICT (path) DO UPDATE SET
		 usage_count = target_folders.usage_count + 1,
		 last_used_at = excluded.last_used_at,
		 relative_path = CASE WHEN target_folders.relative_path = '' THEN excluded.relative_path
		                      ELSE target_folders.relative_path END`,
		stored.TargetFolderPath, stored.TargetFolderName, stored.TargetRelativePath,
		filepath.Dir(stored.TargetFolderPath), formatTime(stored.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update folder usage: %w", err)
	}

	if stored.NewFilename != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO rename_history (id, original_filename, new_filename, keywords, detected_date,
			 target_folder, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), stored.OriginalFilename, stored.NewFilename, string(keywords),
			stored.DetectedDate, stored.TargetFolderPath, formatTime(stored.CreatedAt),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert rename entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sorting entry: %w", err)
	}

	return &stored, nil
}

// ListEntries returns all sorting decisions, oldest first.
func (r *TrainingRepo) ListEntries(ctx context.Context) ([]TrainingEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, original_filename, original_path, target_folder_path, target_folder_name,
		 target_relative_path, extracted_text, keywords, detected_date, new_filename, created_at, confidence
		 FROM sorting_history ORDER BY created_at, rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sorting history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []TrainingEntry
	for rows.Next() {
		var (
			e         TrainingEntry
			keywords  string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.OriginalFilename, &e.OriginalPath, &e.TargetFolderPath,
			&e.TargetFolderName, &e.TargetRelativePath, &e.ExtractedText, &keywords,
			&e.DetectedDate, &e.NewFilename, &createdAt, &e.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan sorting entry: %w", err)
		}
		e.Keywords = decodeStrings(keywords)
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sorting history: %w", err)
	}
	return entries, nil
}

// Count returns the number of sorting decisions.
func (r *TrainingRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sorting_history").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sorting entries: %w", err)
	}
	return n, nil
}

// MostUsedFolders returns up to limit folders ordered by usage.
func (r *TrainingRepo) MostUsedFolders(ctx context.Context, limit int) ([]FolderUsage, error) {
	if limit <= 0 {
		return nil, nil
	}
	return r.queryFolders(ctx,
		`SELECT path, name, relative_path, parent_path, usage_count, last_used_at
		 FROM target_folders ORDER BY usage_count DESC, last_used_at DESC LIMIT ?`, limit)
}

// SubfoldersForParent returns used folders whose parent is parentPath.
func (r *TrainingRepo) SubfoldersForParent(ctx context.Context, parentPath string) ([]FolderUsage, error) {
	return r.queryFolders(ctx,
		`SELECT path, name, relative_path, parent_path, usage_count, last_used_at
		 FROM target_folders WHERE parent_path = ? ORDER BY usage_count DESC`, filepath.Clean(parentPath))
}

// FolderStats returns every known folder ordered by usage.
func (r *TrainingRepo) FolderStats(ctx context.Context) ([]FolderUsage, error) {
	return r.queryFolders(ctx,
		`SELECT path, name, relative_path, parent_path, usage_count, last_used_at
		 FROM target_folders ORDER BY usage_count DESC`)
}

// RenamesByKeywords returns up to limit renames, newest first, that share
// at least one keyword with keywords. Keywords match ignoring case.
func (r *TrainingRepo) RenamesByKeywords(ctx context.Context, keywords []string, limit int) ([]RenameEntry, error) {
	if limit <= 0 || len(keywords) == 0 {
		return nil, nil
	}
	wanted := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		wanted[strings.ToLower(k)] = struct{}{}
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, original_filename, new_filename, keywords, detected_date, target_folder, created_at
		 FROM rename_history ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query rename history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []RenameEntry
	for rows.Next() {
		var (
			e         RenameEntry
			kws       string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.OriginalFilename, &e.NewFilename, &kws,
			&e.DetectedDate, &e.TargetFolder, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan rename entry: %w", err)
		}
		e.Keywords = decodeStrings(kws)
		if !sharesKeyword(e.Keywords, wanted) {
			continue
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rename history: %w", err)
	}
	return out, nil
}

func sharesKeyword(keywords []string, wanted map[string]struct{}) bool {
	for _, k := range keywords {
		if _, ok := wanted[strings.ToLower(k)]; ok {
			return true
		}
	}
	return false
}

func (r *TrainingRepo) queryFolders(ctx context.Context, query string, args ...any) ([]FolderUsage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query target folders: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var folders []FolderUsage
	for rows.Next() {
		var (
			f        FolderUsage
			lastUsed string
		)
		if err := rows.Scan(&f.Path, &f.Name, &f.RelativePath, &f.ParentPath, &f.UsageCount, &lastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan target folder: %w", err)
		}
		if f.LastUsedAt, err = parseTime(lastUsed); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate target folders: %w", err)
	}
	return folders, nil
}
