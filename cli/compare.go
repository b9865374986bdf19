package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var compareFile string

var compareCmd = &cobra.Command{
	Use:   "compare [title]...",
	Short: "Reconcile titles against the catalog and external sources",
	Long: `Match each title against the local catalog; for the misses, search the
external sources and print one merged creation candidate per title.
Titles come from the arguments, or one per line with --file (use "-" for stdin).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		titles := args
		if compareFile != "" {
			fromFile, err := readTitles(compareFile)
			if err != nil {
				return err
			}
			titles = append(titles, fromFile...)
		}
		if len(titles) == 0 {
			return fmt.Errorf("no titles given")
		}

		engine, cleanup, err := buildEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		out, err := engine.CompareListing(cmd.Context(), titles)
		if err != nil {
			return err
		}
		return printJSON(out)
	},
}

func init() {
	compareCmd.Flags().StringVarP(&compareFile, "file", "f", "", "read titles from a file, one per line")
}

func readTitles(path string) ([]string, error) {
	var r *os.File
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var titles []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			titles = append(titles, line)
		}
	}
	return titles, sc.Err()
}
