package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/santiaoqiao/excel-mapper/excel"
)

var rowFlags []string

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the records given by --row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMapper()
		if err != nil {
			return err
		}
		records := make([]TestData, 0, len(rowFlags))
		for _, flag := range rowFlags {
			record, err := parseRow(m, flag)
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		if err = m.ExportData(args[0], records); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d records written to %s\n", len(records), args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringArrayVar(&rowFlags, "row", nil, "a record as header=value pairs separated by commas")
	rootCmd.AddCommand(exportCmd)
}

// parse "名称=Alice,年龄=30" the same way a sheet row is read: the keys form
// the header row and the values the data row.
func parseRow(m *excel.Mapper[TestData], flag string) (TestData, error) {
	pairs := strings.Split(flag, ",")
	headers := make([]string, 0, len(pairs))
	values := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return TestData{}, fmt.Errorf("the row %q should be header=value pairs", flag)
		}
		headers = append(headers, strings.TrimSpace(k))
		values = append(values, v)
	}
	return m.Reconstruct(excel.BuildHeaderIndex(headers), values)
}
