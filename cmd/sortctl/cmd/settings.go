package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docsorter/internal/config"
	"docsorter/internal/service"
)

var (
	setPersist  bool
	setPrecache bool
	setMax      int
	setTargets  []string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change persisted settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSettings(sorter().Settings())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Long: `Change one or more settings. Only the flags that are given are applied.

Examples:
  sortctl settings set --persist=false
  sortctl settings set --target-folder ~/Archiv --target-folder ~/Steuer --max 8`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch service.SettingsPatch
		flags := cmd.Flags()
		if flags.Changed("persist") {
			patch.PersistAnalysisCache = &setPersist
		}
		if flags.Changed("precache") {
			patch.SuggestionPrecache = &setPrecache
		}
		if flags.Changed("max") {
			patch.MaxSuggestions = &setMax
		}
		if flags.Changed("target-folder") {
			targets, err := absPaths(setTargets)
			if err != nil {
				return err
			}
			patch.TargetFolders = &targets
		}

		s, err := sorter().UpdateSettings(cmd.Context(), patch)
		if err != nil {
			return err
		}
		return printSettings(s)
	},
}

func printSettings(s config.Settings) error {
	if asJSON {
		return printJSON(stdout, s)
	}
	fmt.Fprintf(stdout, "persist_analysis_cache: %t\n", s.PersistAnalysisCache)
	fmt.Fprintf(stdout, "suggestion_precache:    %t\n", s.SuggestionPrecache)
	fmt.Fprintf(stdout, "max_suggestions:        %d\n", s.MaxSuggestions)
	fmt.Fprintf(stdout, "target_folders:         %s\n", orNone(strings.Join(s.TargetFolders, ", ")))
	return nil
}

func init() {
	settingsSetCmd.Flags().BoolVar(&setPersist, "persist", true, "persist analyses across restarts")
	settingsSetCmd.Flags().BoolVar(&setPrecache, "precache", true, "fetch filename suggestions in the background")
	settingsSetCmd.Flags().IntVar(&setMax, "max", config.MaxSuggestionsLimit, "maximum folder suggestions")
	settingsSetCmd.Flags().StringArrayVar(&setTargets, "target-folder", nil, "destination root folder (repeatable)")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
