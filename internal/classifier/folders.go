package classifier

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// FolderIndex maps lowercase folder names to paths below the current
// destination roots. The index is rebuilt only when the root list changes.
type FolderIndex struct {
	mu     sync.Mutex
	roots  []string
	byName map[string]string
	logger *slog.Logger
}

// NewFolderIndex creates an index over roots.
func NewFolderIndex(roots []string, logger *slog.Logger) *FolderIndex {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &FolderIndex{logger: logger}
	idx.SetRoots(roots)
	return idx
}

// SetRoots replaces the destination roots, rebuilding the index if they differ.
func (x *FolderIndex) SetRoots(roots []string) {
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		if r != "" {
			cleaned = append(cleaned, filepath.Clean(r))
		}
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if x.byName != nil && slices.Equal(x.roots, cleaned) {
		return
	}
	x.roots = cleaned
	x.byName = x.build(cleaned)
}

// Roots returns the current destination roots.
func (x *FolderIndex) Roots() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return slices.Clone(x.roots)
}

// Lookup finds a folder by name, ignoring case.
func (x *FolderIndex) Lookup(name string) (string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	p, ok := x.byName[strings.ToLower(name)]
	return p, ok
}

// Resolve maps a learned folder to a folder that exists now: the learned
// path if still present, otherwise a folder of the same name under the
// current roots.
func (x *FolderIndex) Resolve(learnedPath, learnedName string) (string, bool) {
	if learnedPath != "" && isDir(learnedPath) {
		return filepath.Clean(learnedPath), true
	}
	if learnedName == "" {
		learnedName = filepath.Base(learnedPath)
	}
	return x.Lookup(learnedName)
}

// Rebuild forces a fresh walk of the current roots, picking up folders
// created since the last build.
func (x *FolderIndex) Rebuild() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.byName = x.build(x.roots)
}

// build walks roots in order. The first folder seen for a name wins.
func (x *FolderIndex) build(roots []string) map[string]string {
	byName := make(map[string]string)
	for _, root := range roots {
		if !isDir(root) {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtrees are skipped
				if d != nil && d.IsDir() && path != root {
					return fs.SkipDir
				}
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			key := strings.ToLower(d.Name())
			if _, ok := byName[key]; !ok {
				byName[key] = path
			}
			return nil
		})
		if err != nil {
			x.logger.Warn("failed to index destination folder", "root", root, "error", err)
		}
	}
	return byName
}

// childDirs lists visible directories directly inside parent, sorted by name.
func childDirs(parent string) []string {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, filepath.Join(parent, e.Name()))
		}
	}
	return dirs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// RelativeDisplayPath renders folder relative to the first root that
// contains it, prefixed with the root's name.
func RelativeDisplayPath(folder string, roots []string) string {
	for _, root := range roots {
		rel, err := filepath.Rel(root, folder)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if rel == "." {
			return filepath.Base(root)
		}
		return filepath.ToSlash(filepath.Join(filepath.Base(root), rel))
	}
	return filepath.Base(folder)
}
