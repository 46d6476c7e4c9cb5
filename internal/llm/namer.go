package llm

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"docsorter/internal/analysis"
	"docsorter/internal/storage"
)

const (
	// OriginLLM marks suggestions produced by a language model.
	OriginLLM = "llm"

	maxExcerptRunes   = 3000
	maxStemRunes      = 80
	defaultConfidence = 0.5
	suggestTimeout    = 45 * time.Second
)

const systemPrompt = "You name scanned and downloaded personal documents such as invoices, contracts, " +
	"tax and insurance letters. Answer only in the requested format."

// FilenameSuggester asks a chat model for a descriptive filename.
// It implements analysis.SuggestionProvider.
type FilenameSuggester struct {
	chat    Chatter
	params  ChatParams
	timeout time.Duration
	logger  *slog.Logger
}

// NewFilenameSuggester creates a suggester. A nil chat makes it unavailable.
func NewFilenameSuggester(chat Chatter, logger *slog.Logger) *FilenameSuggester {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilenameSuggester{
		chat:    chat,
		params:  ChatParams{MaxTokens: 300},
		timeout: suggestTimeout,
		logger:  logger,
	}
}

// IsAvailable reports whether a chat model is configured.
func (s *FilenameSuggester) IsAvailable() bool {
	return s != nil && s.chat != nil
}

// SuggestFilename proposes filenames for the document in req. The original
// file extension is always kept.
func (s *FilenameSuggester) SuggestFilename(ctx context.Context, req analysis.FilenameRequest) ([]storage.NameSuggestion, error) {
	if !s.IsAvailable() {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.chat.Chat(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: BuildFilenamePrompt(req)},
	}, s.params)
	if err != nil {
		return nil, fmt.Errorf("failed to get filename suggestion: %w", err)
	}

	ext := filepath.Ext(req.CurrentFilename)
	var out []storage.NameSuggestion
	seen := make(map[string]struct{})
	for _, p := range ParseFilenameReply(reply) {
		name := SanitizeFilename(p.Filename, ext)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, storage.NameSuggestion{Text: name, Confidence: p.Confidence, Origin: OriginLLM})
	}

	s.logger.DebugContext(ctx, "filename suggestions received", "file", req.CurrentFilename, "count", len(out))
	return out, nil
}

// BuildFilenamePrompt renders the user prompt for req.
func BuildFilenamePrompt(req analysis.FilenameRequest) string {
	var b strings.Builder
	b.WriteString("Suggest a descriptive filename for the following document.\n\n")
	fmt.Fprintf(&b, "CURRENT FILENAME: %s\n", req.CurrentFilename)
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "DETECTED CATEGORIES: %s\n", strings.Join(req.Keywords, ", "))
	}
	if req.DetectedDate != "" {
		fmt.Fprintf(&b, "DATE IN DOCUMENT: %s\n", req.DetectedDate)
	}
	if req.FileDate != "" {
		fmt.Fprintf(&b, "FILE DATE: %s\n", req.FileDate)
	}
	b.WriteString("\nCONTENT:\n")
	b.WriteString(truncateRunes(req.Text, maxExcerptRunes))
	b.WriteString(`

RULES:
1. Format YYYY-MM-DD_Category_Description when a date is known
2. Only letters, digits, underscores and hyphens; no spaces or umlauts
3. At most 80 characters without extension
4. Keep the document's language for category and description

Answer exactly in this format:
FILENAME: <proposed filename>
REASON: <one short sentence>
CONFIDENCE: <number from 0 to 100>`)
	return b.String()
}

// ProposedName is one filename parsed from a model reply.
type ProposedName struct {
	Filename   string  `json:"filename"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

var fencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

// ParseFilenameReply extracts proposals from a reply in the line format
// (FILENAME:/REASON:/CONFIDENCE:, German labels accepted) or as a JSON
// object or array, optionally wrapped in a code fence.
func ParseFilenameReply(reply string) []ProposedName {
	if m := fencePattern.FindStringSubmatch(reply); m != nil {
		reply = m[1]
	}
	if props, ok := parseJSONReply(reply); ok {
		return props
	}
	return parseLineReply(reply)
}

func parseJSONReply(reply string) ([]ProposedName, bool) {
	start := strings.IndexAny(reply, "[{")
	if start < 0 {
		return nil, false
	}
	body := strings.TrimSpace(reply[start:])

	type rawName struct {
		Filename   string          `json:"filename"`
		Reason     string          `json:"reason"`
		Confidence json.RawMessage `json:"confidence"`
	}
	var raws []rawName
	if body[0] == '[' {
		if err := json.Unmarshal([]byte(body), &raws); err != nil {
			return nil, false
		}
	} else {
		var one rawName
		end := strings.LastIndex(body, "}")
		if end < 0 || json.Unmarshal([]byte(body[:end+1]), &one) != nil {
			return nil, false
		}
		raws = []rawName{one}
	}

	props := make([]ProposedName, 0, len(raws))
	for _, r := range raws {
		if r.Filename == "" {
			continue
		}
		props = append(props, ProposedName{
			Filename:   r.Filename,
			Reason:     r.Reason,
			Confidence: parseConfidence(strings.Trim(string(r.Confidence), `"`)),
		})
	}
	return props, len(props) > 0
}

func parseLineReply(reply string) []ProposedName {
	var (
		props   []ProposedName
		current *ProposedName
	)
	for _, line := range strings.Split(reply, "\n") {
		label, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToUpper(strings.Trim(strings.TrimSpace(label), "*")) {
		case "FILENAME", "DATEINAME":
			props = append(props, ProposedName{Filename: value, Confidence: defaultConfidence})
			current = &props[len(props)-1]
		case "REASON", "BEGRÜNDUNG":
			if current != nil {
				current.Reason = value
			}
		case "CONFIDENCE", "KONFIDENZ":
			if current != nil {
				current.Confidence = parseConfidence(value)
			}
		}
	}
	return props
}

// parseConfidence reads "85", "85%" or "0.85" into [0,1].
func parseConfidence(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return defaultConfidence
	}
	if v > 1 {
		v /= 100
	}
	return min(v, 1)
}

var (
	umlauts        = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "Ä", "Ae", "Ö", "Oe", "Ü", "Ue", "ß", "ss")
	invalidChars   = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)
	repeatedSpacer = regexp.MustCompile(`_{2,}`)
)

// SanitizeFilename turns a proposed name into a safe filename ending in ext.
// It returns "" when nothing usable remains.
func SanitizeFilename(proposed, ext string) string {
	name := strings.Trim(strings.TrimSpace(proposed), "`\"'<>[]")
	name = filepath.Base(filepath.FromSlash(name))
	if e := filepath.Ext(name); e != "" && len(e) <= 6 {
		if ext == "" {
			ext = e
		}
		name = strings.TrimSuffix(name, e)
	}

	name = umlauts.Replace(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = invalidChars.ReplaceAllString(name, "")
	name = repeatedSpacer.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_-.")
	name = truncateRunes(name, maxStemRunes)
	name = strings.TrimRight(name, "_-")

	if name == "" || name == "." {
		return ""
	}
	return name + strings.ToLower(ext)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
