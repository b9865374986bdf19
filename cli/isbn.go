package cli

import (
	"github.com/spf13/cobra"
)

var isbnCmd = &cobra.Command{
	Use:   "isbn [isbn]",
	Short: "Resolve one volume by ISBN",
	Long: `Look the ISBN up in the local catalog and walk the bibliographic sources
(Google Books, OpenLibrary, Manga-News), then print the merged candidate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cleanup, err := buildEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		cand, err := engine.ResolveISBN(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cand)
	},
}
