package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var scanTimeout time.Duration

const scanPollInterval = 250 * time.Millisecond

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Analyze every supported document in the inbox",
	Long: `Queue every supported document in INBOX_PATH for analysis and wait until
the queue is drained or the timeout expires.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		queued, err := sorter().PreCacheInbox(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "queued %d documents\n", queued)

		ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
		defer cancel()
		ticker := time.NewTicker(scanPollInterval)
		defer ticker.Stop()

		for {
			stats, err := sorter().Stats(ctx)
			if err != nil {
				return err
			}
			if stats.PendingCount == 0 {
				fmt.Fprintf(stdout, "%d documents cached\n", stats.CachedCount)
				return nil
			}
			select {
			case <-ctx.Done():
				return fmt.Errorf("timed out with %d analyses pending", stats.PendingCount)
			case <-ticker.C:
			}
		}
	},
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Minute, "maximum time to wait for the analyses")
	rootCmd.AddCommand(scanCmd)
}
