package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsorter/internal/service"
)

var (
	clearPath       string
	clearPersistent bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and clear the analysis cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache and classifier statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := sorter().Stats(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(stdout, stats)
		}
		fmt.Fprintf(stdout, "cached documents:      %d\n", stats.CachedCount)
		fmt.Fprintf(stdout, "pending analyses:      %d\n", stats.PendingCount)
		fmt.Fprintf(stdout, "queued analyses:       %d\n", stats.QueuedCount)
		fmt.Fprintf(stdout, "cached suggestions:    %d\n", stats.SuggestionCachedCount)
		fmt.Fprintf(stdout, "persistent cache:      %t\n", stats.PersistenceEnabled)
		fmt.Fprintf(stdout, "suggestion precache:   %t\n", stats.SuggestionPrecache)
		fmt.Fprintf(stdout, "suggestions available: %t\n", stats.SuggestionsAvailable)
		fmt.Fprintf(stdout, "classifier:            %s (%d decisions)\n", stats.ClassifierState, stats.TrainingCount)
		fmt.Fprintf(stdout, "llm tokens used:       %d\n", stats.TokensUsed)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop cached analyses",
	Long: `Drop cached analyses from memory. With --path only that document is
dropped. With --persistent the on-disk cache is wiped as well.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := service.ClearRequest{Persistent: clearPersistent}
		if clearPath != "" {
			paths, err := absPaths([]string{clearPath})
			if err != nil {
				return err
			}
			req.Path = paths[0]
		}
		if err := sorter().ClearCache(cmd.Context(), req); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "cache cleared")
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().StringVar(&clearPath, "path", "", "clear a single document")
	cacheClearCmd.Flags().BoolVar(&clearPersistent, "persistent", false, "also wipe the on-disk cache")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
