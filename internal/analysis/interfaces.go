// Package analysis caches per-document analysis results and computes them
// on background workers.
package analysis

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analysis.go -package=mocks docsorter/internal/analysis Extractor,Document,SuggestionProvider

import (
	"context"
	"time"

	"docsorter/internal/storage"
)

// Extractor opens documents for analysis. Implementations must be safe to
// call from a background goroutine.
type Extractor interface {
	Open(ctx context.Context, path string) (Document, error)
}

// Document exposes the content detectors of one opened document.
type Document interface {
	ExtractText() (string, error)
	// ExtractKeywords returns category tags, ordered and deduplicated.
	ExtractKeywords() ([]string, error)
	// ExtractDates returns detected dates, newest first, deduplicated.
	ExtractDates() ([]time.Time, error)
	Close() error
}

// FilenameRequest is the input for a filename suggestion.
type FilenameRequest struct {
	Text            string
	CurrentFilename string
	Keywords        []string
	DetectedDate    string // YYYY-MM-DD, newest detected date
	FileDate        string // YYYY-MM-DD, file modification date
}

// SuggestionProvider proposes filenames for analyzed documents.
// IsAvailable is the only gate; an unavailable provider is never called.
type SuggestionProvider interface {
	SuggestFilename(ctx context.Context, req FilenameRequest) ([]storage.NameSuggestion, error)
	IsAvailable() bool
}
