package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	seasonName string
	seasonYear int
)

var seasonCmd = &cobra.Command{
	Use:   "season [listing-url]",
	Short: "Reconcile a whole simulcast season",
	Long: `Scrape a season listing page and reconcile every title on it. Pass the
listing URL as an argument, or a season name and year:

  mangacat season /animes/hiver-2026.html
  mangacat season --season hiver --year 2026`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cleanup, err := buildEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		switch {
		case len(args) == 1:
			out, err := engine.CompareSeason(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		case seasonName != "" && seasonYear > 0:
			out, err := engine.CompareSeasonOf(cmd.Context(), seasonName, seasonYear)
			if err != nil {
				return err
			}
			return printJSON(out)
		default:
			return fmt.Errorf("a listing URL or --season and --year are required")
		}
	},
}

func init() {
	seasonCmd.Flags().StringVar(&seasonName, "season", "", "season name (hiver, printemps, ete, automne)")
	seasonCmd.Flags().IntVar(&seasonYear, "year", 0, "season year")
}
