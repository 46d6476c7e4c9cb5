package storage

import (
	"os"
	"slices"
	"time"
)

// DateLayout is the day-precision layout used for detected document dates.
const DateLayout = "2006-01-02"

// AnalysisRecord is the cached analysis result for one document path.
type AnalysisRecord struct {
	Path               string
	ExtractedText      string
	Keywords           []string    // Category tags, ordered, deduplicated
	Dates              []time.Time // Detected dates, newest first
	AnalyzedAt         time.Time
	FileModifiedAt     float64 // Document mtime (epoch seconds) at analysis time
	Suggestions        []NameSuggestion
	SuggestionsFetched bool
}

// Clone returns a deep copy of the record.
func (r *AnalysisRecord) Clone() *AnalysisRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.Keywords = slices.Clone(r.Keywords)
	c.Dates = slices.Clone(r.Dates)
	c.Suggestions = slices.Clone(r.Suggestions)
	return &c
}

// NewestDate returns the most recent detected date.
func (r *AnalysisRecord) NewestDate() (time.Time, bool) {
	if r == nil || len(r.Dates) == 0 {
		return time.Time{}, false
	}
	return r.Dates[0], true
}

// IsEmpty reports whether the record carries no analysis output.
func (r *AnalysisRecord) IsEmpty() bool {
	return r.ExtractedText == "" && len(r.Keywords) == 0 && len(r.Dates) == 0
}

// NameSuggestion is a proposed filename for a document.
type NameSuggestion struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Origin     string  `json:"origin"`
}

// TrainingEntry records one user sorting decision.
type TrainingEntry struct {
	ID                 string // UUID
	OriginalFilename   string
	OriginalPath       string
	TargetFolderPath   string
	TargetFolderName   string
	TargetRelativePath string // e.g. "Tax 2026/Banks"
	ExtractedText      string
	Keywords           []string
	DetectedDate       string // YYYY-MM-DD or empty
	NewFilename        string
	CreatedAt          time.Time
	Confidence         float64
}

// RenameEntry records a filename the user gave a document when filing it.
type RenameEntry struct {
	ID               string
	OriginalFilename string
	NewFilename      string
	Keywords         []string
	DetectedDate     string
	TargetFolder     string
	CreatedAt        time.Time
}

// FolderUsage tracks how often a destination folder was chosen.
type FolderUsage struct {
	Path         string
	Name         string
	RelativePath string
	ParentPath   string
	UsageCount   int
	LastUsedAt   time.Time
}

// ModTime returns the modification time of path as fractional epoch seconds.
// The value is the validity fingerprint stored in AnalysisRecord.FileModifiedAt.
func ModTime(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return float64(info.ModTime().UnixNano()) / 1e9, nil
}
