// Package extract reads text documents and detects category keywords and dates in them.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"docsorter/internal/analysis"
)

// ErrUnsupported is returned for file types the extractor cannot read.
var ErrUnsupported = errors.New("unsupported document type")

// maxDocumentSize bounds how much of a file is read into memory.
const maxDocumentSize = 8 << 20

var supportedExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".log":      true,
}

// IsSupported reports whether path has an extension the extractor can read.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// TextExtractor opens plain-text and Markdown documents.
// It implements analysis.Extractor.
type TextExtractor struct {
	markdown *MarkdownFlattener
}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{markdown: NewMarkdownFlattener()}
}

// Open reads the document at path.
func (e *TextExtractor) Open(ctx context.Context, path string) (analysis.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsSupported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupported, path)
	}
	if info.Size() > maxDocumentSize {
		return nil, fmt.Errorf("document too large: %d bytes", info.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if !utf8.Valid(content) {
		content = []byte(strings.ToValidUTF8(string(content), " "))
	}

	return &File{
		path:     path,
		content:  content,
		markdown: isMarkdown(path),
		flatten:  e.markdown,
	}, nil
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// File is an opened document. Text is extracted once and reused by the
// keyword and date detectors.
type File struct {
	path     string
	content  []byte
	markdown bool
	flatten  *MarkdownFlattener

	once sync.Once
	text string
}

// ExtractText returns the document's plain text.
func (f *File) ExtractText() (string, error) {
	f.once.Do(func() {
		if f.markdown {
			f.text = f.flatten.Flatten(f.content)
			return
		}
		f.text = strings.TrimSpace(string(f.content))
	})
	return f.text, nil
}

// ExtractKeywords returns the category tags found in the text.
func (f *File) ExtractKeywords() ([]string, error) {
	text, err := f.ExtractText()
	if err != nil {
		return nil, err
	}
	return DetectKeywords(text), nil
}

// ExtractDates returns the calendar dates found in the text, newest first.
func (f *File) ExtractDates() ([]time.Time, error) {
	text, err := f.ExtractText()
	if err != nil {
		return nil, err
	}
	return DetectDates(text), nil
}

// Close releases the document.
func (f *File) Close() error {
	f.content = nil
	return nil
}
