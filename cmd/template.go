package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template <path>",
	Short: "Write the header template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMapper()
		if err != nil {
			return err
		}
		if err = m.ExportTemplate(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "template written to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
