package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"docsorter/internal/app"
	"docsorter/internal/config"
	"docsorter/internal/service"
)

var (
	noLLM   bool
	asJSON  bool
	current *app.App
)

var rootCmd = &cobra.Command{
	Use:   "sortctl",
	Short: "Analyze inbox documents and suggest where to file them",
	Long: `sortctl analyzes documents, suggests destination folders and filenames
learned from earlier sorting decisions, and manages the analysis cache.

It reads the same environment (or .env) configuration as the API server
and shares its database and settings file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if noLLM {
			cfg.LLMProvider = config.ProviderNone
		}
		if err := app.SetupLogging(cfg); err != nil {
			return err
		}
		current, err = app.New(cmd.Context(), cfg)
		return err
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if current != nil {
		if cerr := current.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noLLM, "no-llm", false, "do not contact a language model")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
}

// sorter returns the initialized sorter
func sorter() service.Sorter {
	return current.Sorter
}

func absPaths(args []string) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		p, err := filepath.Abs(a)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", a, err)
		}
		out[i] = p
	}
	return out, nil
}
