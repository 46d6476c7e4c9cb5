package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsorter/internal/classifier"
	"docsorter/internal/service"
	"docsorter/internal/storage"
)

var (
	suggestMax   int
	suggestNames bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <file>",
	Short: "Suggest destination folders and filenames for a document",
	Long: `Analyze a document if needed and rank destination folders learned from
earlier sorting decisions. With --names, filename proposals are printed too.

Examples:
  sortctl suggest ~/Inbox/rechnung.txt
  sortctl suggest --max 3 --names ~/Inbox/rechnung.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		paths, err := absPaths(args)
		if err != nil {
			return err
		}
		path := paths[0]

		if _, err := sorter().Analyze(ctx, service.AnalyzeRequest{Path: path, Urgent: true, Wait: true}); err != nil {
			return err
		}
		folders, err := sorter().SuggestFolders(ctx, service.FolderRequest{Path: path, Max: suggestMax})
		if err != nil {
			return err
		}
		var names []storage.NameSuggestion
		if suggestNames {
			if names, err = sorter().SuggestFilenames(ctx, path); err != nil {
				return err
			}
		}

		if asJSON {
			return printJSON(stdout, struct {
				Folders   []classifier.Suggestion  `json:"folders"`
				Filenames []storage.NameSuggestion `json:"filenames,omitempty"`
			}{folders, names})
		}
		if err := printFolders(stdout, folders); err != nil {
			return err
		}
		if suggestNames {
			fmt.Fprintln(stdout)
			return printNames(stdout, names)
		}
		return nil
	},
}

var subfoldersMax int

var subfoldersCmd = &cobra.Command{
	Use:   "subfolders <folder>",
	Short: "Suggest subfolders of a destination folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := absPaths(args)
		if err != nil {
			return err
		}
		suggestions, err := sorter().SuggestSubfolders(cmd.Context(), paths[0], subfoldersMax)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(stdout, suggestions)
		}
		return printFolders(stdout, suggestions)
	},
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestMax, "max", "n", 0, "maximum number of folders (default from settings)")
	suggestCmd.Flags().BoolVar(&suggestNames, "names", false, "also suggest filenames")
	subfoldersCmd.Flags().IntVarP(&subfoldersMax, "max", "n", 0, "maximum number of subfolders (default from settings)")
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(subfoldersCmd)
}
