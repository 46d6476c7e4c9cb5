// Package inbox lists and watches the folder new documents arrive in.
package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"docsorter/internal/extract"
)

// Scanner lists the documents waiting in an inbox folder.
type Scanner struct {
	dir string
}

// NewScanner creates a scanner for dir.
func NewScanner(dir string) *Scanner {
	return &Scanner{dir: filepath.Clean(dir)}
}

// Dir returns the scanned folder.
func (s *Scanner) Dir() string {
	return s.dir
}

// Scan returns the supported documents directly inside the inbox, sorted by
// name. Subfolders and hidden files are skipped.
func (s *Scanner) Scan(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read inbox %s: %w", s.dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !Accepts(e.Name()) || e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Accepts reports whether a file name is a visible, supported document.
func Accepts(name string) bool {
	base := filepath.Base(name)
	return !strings.HasPrefix(base, ".") && extract.IsSupported(base)
}
