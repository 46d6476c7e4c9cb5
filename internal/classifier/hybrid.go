package classifier

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	SignalModel  Signal = "llm"
	SignalHybrid Signal = "hybrid"
)

const (
	// AdviceThreshold is the top local confidence below which a language
	// model is asked for a folder.
	AdviceThreshold = 0.6

	localWeight  = 0.6
	adviceWeight = 0.4
	hybridCap    = 0.98
)

// FolderQuery asks a language model to pick one of Folders for a document.
type FolderQuery struct {
	Text         string
	Folders      []string // folder names offered to the model
	Keywords     []string
	DetectedDate string
}

// FolderAdvice is the folder a language model picked.
type FolderAdvice struct {
	Folder     string
	Reason     string
	Confidence float64
}

// NeedsAdvice reports whether the local ranking is too weak to stand alone.
func NeedsAdvice(local []Suggestion) bool {
	return len(local) == 0 || local[0].Confidence < AdviceThreshold
}

// CandidateFolders lists the folders offered to a language model: the
// folders of the local suggestions followed by the direct children of each
// root, without duplicates.
func CandidateFolders(roots []string, local []Suggestion) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, s := range local {
		add(s.FolderPath)
	}
	for _, root := range roots {
		for _, dir := range childDirs(filepath.Clean(root)) {
			add(dir)
		}
	}
	return out
}

// MatchFolder finds the folder a model named: an exact match ignoring case
// first, then the first folder whose name contains or is contained in it.
func MatchFolder(name string, folders []string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return "", false
	}
	for _, f := range folders {
		if strings.ToLower(filepath.Base(f)) == want {
			return f, true
		}
	}
	for _, f := range folders {
		base := strings.ToLower(filepath.Base(f))
		if strings.Contains(base, want) || strings.Contains(want, base) {
			return f, true
		}
	}
	return "", false
}

// MergeAdvice folds a model suggestion into the local ranking. A folder
// both agree on gets 0.6 of the local and 0.4 of the model confidence,
// capped at 0.98; otherwise the model suggestion is appended. The result is
// ordered by confidence and cut to limit.
func MergeAdvice(local []Suggestion, advised Suggestion, limit int) []Suggestion {
	out := make([]Suggestion, 0, len(local)+1)
	merged := false
	for _, s := range local {
		if !merged && s.FolderPath == advised.FolderPath {
			s.Confidence = min(localWeight*s.Confidence+adviceWeight*advised.Confidence, hybridCap)
			s.Reason += " + confirmed by LLM"
			s.Signal = SignalHybrid
			merged = true
		}
		out = append(out, s)
	}
	if !merged {
		out = append(out, advised)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
