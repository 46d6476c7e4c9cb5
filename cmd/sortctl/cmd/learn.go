package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsorter/internal/service"
)

var learnName string

var learnCmd = &cobra.Command{
	Use:   "learn <file> <target-folder>",
	Short: "Record that a document belongs in a folder",
	Long: `Record a sorting decision so that similar documents are suggested the
same folder. The document is analyzed first if it is not cached.

Examples:
  sortctl learn ~/Inbox/rechnung.txt ~/Archiv/Rechnungen/2026
  sortctl learn --name 2026-03_Stadtwerke.txt ~/Inbox/scan.txt ~/Archiv/Rechnungen`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := absPaths(args)
		if err != nil {
			return err
		}
		entry, err := sorter().Learn(cmd.Context(), service.LearnRequest{
			Path:         paths[0],
			TargetFolder: paths[1],
			NewFilename:  learnName,
		})
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(stdout, entry)
		}
		fmt.Fprintf(stdout, "learned %s -> %s\n", entry.OriginalFilename, entry.TargetRelativePath)
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Carry the cached analysis of a renamed or moved document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := absPaths(args)
		if err != nil {
			return err
		}
		moved, err := sorter().RecordMove(cmd.Context(), service.MoveRequest{From: paths[0], To: paths[1]})
		if err != nil {
			return err
		}
		if !moved {
			fmt.Fprintln(stdout, "no cached analysis for", paths[0])
			return nil
		}
		fmt.Fprintln(stdout, "cache entry moved to", paths[1])
		return nil
	},
}

func init() {
	learnCmd.Flags().StringVar(&learnName, "name", "", "filename the document was given")
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(moveCmd)
}
