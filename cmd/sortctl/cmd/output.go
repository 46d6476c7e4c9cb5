package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"docsorter/internal/classifier"
	"docsorter/internal/storage"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type analysisView struct {
	Path        string                   `json:"path"`
	Keywords    []string                 `json:"keywords"`
	Dates       []string                 `json:"dates"`
	TextLength  int                      `json:"text_length"`
	Suggestions []storage.NameSuggestion `json:"suggestions,omitempty"`
}

func viewAnalysis(rec *storage.AnalysisRecord) analysisView {
	dates := make([]string, len(rec.Dates))
	for i, d := range rec.Dates {
		dates[i] = d.Format(storage.DateLayout)
	}
	return analysisView{
		Path:        rec.Path,
		Keywords:    rec.Keywords,
		Dates:       dates,
		TextLength:  len([]rune(rec.ExtractedText)),
		Suggestions: rec.Suggestions,
	}
}

func printAnalysis(w io.Writer, rec *storage.AnalysisRecord) {
	dates := viewAnalysis(rec).Dates
	fmt.Fprintf(w, "%s\n", rec.Path)
	fmt.Fprintf(w, "  keywords: %s\n", orNone(strings.Join(rec.Keywords, ", ")))
	fmt.Fprintf(w, "  dates:    %s\n", orNone(strings.Join(dates, ", ")))
	fmt.Fprintf(w, "  text:     %d characters\n", len([]rune(rec.ExtractedText)))
	if rec.SuggestionsFetched {
		for _, s := range rec.Suggestions {
			fmt.Fprintf(w, "  name:     %s (%.0f%%)\n", s.Text, s.Confidence*100)
		}
	}
}

func printFolders(w io.Writer, suggestions []classifier.Suggestion) error {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "no folder suggestions yet; learn a few sorting decisions first")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONFIDENCE\tFOLDER\tSIGNAL\tREASON")
	for _, s := range suggestions {
		folder := s.RelativePath
		if folder == "" {
			folder = s.FolderPath
		}
		fmt.Fprintf(tw, "%.0f%%\t%s\t%s\t%s\n", s.Confidence*100, folder, s.Signal, s.Reason)
	}
	return tw.Flush()
}

func printNames(w io.Writer, names []storage.NameSuggestion) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONFIDENCE\tFILENAME\tORIGIN")
	for _, n := range names {
		fmt.Fprintf(tw, "%.0f%%\t%s\t%s\n", n.Confidence*100, n.Text, n.Origin)
	}
	return tw.Flush()
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var stdout io.Writer = os.Stdout
