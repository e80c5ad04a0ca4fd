package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Print the records of every sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMapper()
		if err != nil {
			return err
		}
		records, err := m.Import(args[0])
		if err != nil {
			return err
		}
		headers := m.HeaderRow(false)
		out := cmd.OutOrStdout()
		for i := range records {
			cells := m.ProjectRecord(&records[i])
			pairs := make([]string, len(cells))
			for j, cell := range cells {
				pairs[j] = headers[j] + "=" + cell
			}
			fmt.Fprintln(out, strings.Join(pairs, " "))
		}
		fmt.Fprintf(out, "%d records\n", len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
