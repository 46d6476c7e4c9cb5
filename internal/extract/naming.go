package extract

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"docsorter/internal/storage"
)

// OriginLocal marks filename suggestions computed without an AI provider.
const OriginLocal = "local"

var (
	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`([A-ZÄÖÜ][a-zäöüß]+(?:\s+[A-ZÄÖÜ][a-zäöüß]+)*)\s+(?:GmbH|AG|KG|OHG|e\.V\.|Ltd\.?|Inc\.?)`),
		regexp.MustCompile(`(?:Firma|Company|Von|From)[\s:]+([A-ZÄÖÜ][a-zäöüß]+(?:\s+[A-ZÄÖÜ][a-zäöüß]+)*)`),
	}
	leadingDate  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// SuggestFilename builds a filename from the detected category, sender and
// month. The original extension is kept.
func SuggestFilename(text, currentFilename string, keywords []string, dates []time.Time) storage.NameSuggestion {
	var parts []string
	confidence := 0.2

	if len(keywords) > 0 {
		parts = append(parts, capitalize(keywords[0]))
		confidence += 0.2
	}
	if company := companyName(text); company != "" {
		parts = append(parts, company)
		confidence += 0.1
	}
	if len(dates) > 0 {
		parts = append(parts, dates[0].Format("2006-01"))
		confidence += 0.1
	}

	if len(parts) == 0 {
		if m := leadingDate.FindStringSubmatch(filepath.Base(currentFilename)); m != nil {
			parts = append(parts, m[1])
		}
		parts = append(parts, "Dokument")
	}

	name := invalidChars.ReplaceAllString(strings.Join(parts, " "), "")
	name = strings.TrimSpace(name)

	ext := filepath.Ext(currentFilename)
	if ext == "" {
		ext = ".txt"
	}

	return storage.NameSuggestion{
		Text:       name + ext,
		Confidence: confidence,
		Origin:     OriginLocal,
	}
}

func companyName(text string) string {
	for _, re := range companyPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		company := strings.TrimSpace(m[1])
		if n := len([]rune(company)); n > 2 && n < 50 {
			return company
		}
	}
	return ""
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
