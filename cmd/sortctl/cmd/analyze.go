package cmd

import (
	"github.com/spf13/cobra"

	"docsorter/internal/service"
	"docsorter/internal/storage"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Analyze documents and print keywords and dates",
	Long: `Analyze one or more documents, waiting for each result. Results are
stored in the analysis cache and reused by the API server when the
persistent cache is enabled.

Examples:
  sortctl analyze ~/Inbox/scan_0042.txt
  sortctl analyze --json ~/Inbox/*.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := absPaths(args)
		if err != nil {
			return err
		}

		records := make([]*storage.AnalysisRecord, 0, len(paths))
		for _, p := range paths {
			resp, err := sorter().Analyze(cmd.Context(), service.AnalyzeRequest{Path: p, Urgent: true, Wait: true})
			if err != nil {
				return err
			}
			records = append(records, resp.Record)
		}

		if asJSON {
			views := make([]analysisView, len(records))
			for i, rec := range records {
				views[i] = viewAnalysis(rec)
			}
			return printJSON(stdout, views)
		}
		for _, rec := range records {
			printAnalysis(stdout, rec)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
