// bvdump loads a tab-separated data file through the same loader and
// reshaper as the viewer and prints the long table (or a summary) to
// stdout. Useful for checking what the chart will plot without a display.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benchview/benchview/src/logging"
	"github.com/benchview/benchview/src/reshape"
	"github.com/benchview/benchview/src/table"
)

var (
	flagFile    string
	flagColumns []string
	flagSummary bool
	flagLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "bvdump",
	Short:         "Dump a tab-separated data file as a long-form table",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagFile, "file", "", "Path to the tab-separated .csv file")
	rootCmd.Flags().StringSliceVar(&flagColumns, "columns", nil, "Columns to include (default: all plottable columns)")
	rootCmd.Flags().BoolVar(&flagSummary, "summary", false, "Print a column summary instead of the long table")
	rootCmd.Flags().StringVar(&flagLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.MarkFlagRequired("file")
}

func run(cmd *cobra.Command, args []string) error {
	log := logging.New(flagLevel)
	defer log.Sync()
	out := cmd.OutOrStdout()

	tbl, err := table.Load(flagFile)
	if err != nil {
		return err
	}
	index, err := tbl.IndexColumn()
	if err != nil {
		return err
	}
	available := table.Selectable(tbl, index)

	if flagSummary {
		fmt.Fprintf(out, "file:    %s\n", flagFile)
		fmt.Fprintf(out, "rows:    %d\n", tbl.NumRows())
		fmt.Fprintf(out, "index:   %s\n", index)
		fmt.Fprintf(out, "columns: %s\n", strings.Join(available, ", "))
		return nil
	}

	selected := flagColumns
	if len(selected) == 0 {
		selected = available
	}
	long, err := reshape.Melt(tbl, index, selected)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\tseries\tvalue\n", index)
	for i := 0; i < long.Len(); i++ {
		fmt.Fprintf(out, "%s\t%s\t%s\n",
			formatValue(long.Index[i]), long.Series[i], formatValue(long.Value[i]))
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
