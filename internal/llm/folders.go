package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"docsorter/internal/classifier"
)

const folderSystemPrompt = "You sort personal documents into the user's existing folders. " +
	"Answer only in the requested format."

// FolderAdvisor asks a chat model which of the user's folders fits a document.
type FolderAdvisor struct {
	chat    Chatter
	params  ChatParams
	timeout time.Duration
	logger  *slog.Logger
}

// NewFolderAdvisor creates an advisor. A nil chat makes it unavailable.
func NewFolderAdvisor(chat Chatter, logger *slog.Logger) *FolderAdvisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FolderAdvisor{
		chat:    chat,
		params:  ChatParams{MaxTokens: 200},
		timeout: suggestTimeout,
		logger:  logger,
	}
}

// IsAvailable reports whether a chat model is configured.
func (a *FolderAdvisor) IsAvailable() bool {
	return a != nil && a.chat != nil
}

// ClassifyFolder asks the model to pick one of q.Folders. It returns nil
// when the reply names no folder.
func (a *FolderAdvisor) ClassifyFolder(ctx context.Context, q classifier.FolderQuery) (*classifier.FolderAdvice, error) {
	if !a.IsAvailable() || len(q.Folders) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reply, err := a.chat.Chat(ctx, []Message{
		{Role: "system", Content: folderSystemPrompt},
		{Role: "user", Content: BuildFolderPrompt(q)},
	}, a.params)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder suggestion: %w", err)
	}

	advice, ok := ParseFolderReply(reply)
	if !ok {
		a.logger.DebugContext(ctx, "folder reply named no folder", "reply", truncateRunes(reply, 200))
		return nil, nil
	}
	a.logger.DebugContext(ctx, "folder suggestion received", "folder", advice.Folder, "confidence", advice.Confidence)
	return &advice, nil
}

// BuildFolderPrompt renders the user prompt for q.
func BuildFolderPrompt(q classifier.FolderQuery) string {
	var b strings.Builder
	b.WriteString("Pick the folder from the list that fits the following document best.\n\n")
	b.WriteString("AVAILABLE FOLDERS:\n")
	for _, f := range q.Folders {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	if len(q.Keywords) > 0 {
		fmt.Fprintf(&b, "\nDETECTED CATEGORIES: %s\n", strings.Join(q.Keywords, ", "))
	}
	if q.DetectedDate != "" {
		fmt.Fprintf(&b, "DATE IN DOCUMENT: %s\n", q.DetectedDate)
	}
	b.WriteString("\nCONTENT:\n")
	b.WriteString(truncateRunes(q.Text, maxExcerptRunes))
	b.WriteString(`

Answer exactly in this format:
FOLDER: <exact folder name from the list>
REASON: <one short sentence>
CONFIDENCE: <number from 0 to 100>`)
	return b.String()
}

// ParseFolderReply reads the chosen folder from a reply in the line format
// (FOLDER:/REASON:/CONFIDENCE:, German labels accepted) or as a JSON object,
// optionally wrapped in a code fence.
func ParseFolderReply(reply string) (classifier.FolderAdvice, bool) {
	if m := fencePattern.FindStringSubmatch(reply); m != nil {
		reply = m[1]
	}

	if start := strings.Index(reply, "{"); start >= 0 {
		if end := strings.LastIndex(reply, "}"); end > start {
			var raw struct {
				Folder     string          `json:"folder"`
				Reason     string          `json:"reason"`
				Confidence json.RawMessage `json:"confidence"`
			}
			if json.Unmarshal([]byte(reply[start:end+1]), &raw) == nil && raw.Folder != "" {
				return classifier.FolderAdvice{
					Folder:     cleanFolderName(raw.Folder),
					Reason:     raw.Reason,
					Confidence: parseConfidence(strings.Trim(string(raw.Confidence), `"`)),
				}, true
			}
		}
	}

	advice := classifier.FolderAdvice{Confidence: defaultConfidence}
	for _, line := range strings.Split(reply, "\n") {
		label, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		value = strings.Trim(value, "* ")
		switch strings.ToUpper(strings.Trim(strings.TrimSpace(label), "*")) {
		case "FOLDER", "ORDNER":
			if advice.Folder == "" {
				advice.Folder = cleanFolderName(value)
			}
		case "REASON", "BEGRÜNDUNG":
			advice.Reason = value
		case "CONFIDENCE", "KONFIDENZ":
			advice.Confidence = parseConfidence(value)
		}
	}
	return advice, advice.Folder != ""
}

func cleanFolderName(s string) string {
	return strings.Trim(s, "`\"'<>[]-* ")
}
