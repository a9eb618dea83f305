package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"

	"github.com/chrisdamba/roaddash/internal/logger"
	"github.com/chrisdamba/roaddash/internal/source"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the head and summary statistics of each dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logger.WithAction(cmd.Context(), "inspect")
		rows, _ := cmd.Flags().GetInt("rows")

		sources, err := source.NewSet(ctx, cfg.Data)
		if err != nil {
			return err
		}
		for _, src := range []source.Source{sources.Accidents, sources.Licenses, sources.Vehicles} {
			table, err := src.Read(ctx)
			if err != nil {
				return fmt.Errorf("read %s: %w", src.Name(), err)
			}
			if err := inspectTable(cmd.OutOrStdout(), table, rows); err != nil {
				return err
			}
		}
		return nil
	},
}

// inspectTable prints the first rows and the Describe() summary of a table.
func inspectTable(w io.Writer, table *source.Table, rows int) error {
	fmt.Fprintf(w, "Head of %s:\n", table.Name())
	if table.Rows() == 0 {
		fmt.Fprintf(w, "(no rows; columns %s)\n", strings.Join(table.Columns(), ", "))
		fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("=", 50))
		return nil
	}

	df := dataframe.LoadRecords(table.StringRecords())
	if df.Err != nil {
		return fmt.Errorf("dataframe %s: %w", table.Name(), df.Err)
	}

	head := make([]int, max(min(rows, df.Nrow()), 1))
	for i := range head {
		head[i] = i
	}
	fmt.Fprintln(w, df.Subset(head))

	fmt.Fprintf(w, "Summary of %s:\n", table.Name())
	fmt.Fprintln(w, df.Describe())
	fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("=", 50))
	return nil
}

func init() {
	inspectCmd.Flags().Int("rows", 5, "rows to show per dataset")
	rootCmd.AddCommand(inspectCmd)
}
