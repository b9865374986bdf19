// Package cli implements the mangacat command line tool. Unlike the HTTP
// API it runs the reconciliation engine in-process, against the same
// catalog database and configuration.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mangacat",
	Short:         "Reconcile external metadata against the local manga catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(isbnCmd)
	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(configCmd)
}
