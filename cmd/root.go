package cmd

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/santiaoqiao/excel-mapper/excel"
)

const logLevelEnv = "EXCEL_MAPPER_LOG_LEVEL"

var (
	logLevel  string
	sheetName string
)

var rootCmd = &cobra.Command{
	Use:   "excel-mapper",
	Short: "Export templates and records to Excel, import records by header",
	Long: `Map the rows of an Excel workbook to records by their column headers.

Commands:
  template  Write a workbook holding only the styled header row.
  export    Write the header row and one row per --row flag.
  import    Read every sheet of a workbook and print the records.

Examples:
  excel-mapper template test.xlsx
  excel-mapper export test.xlsx --row 名称=Alice,年龄=30 --row 名称=Bob,年龄=25
  excel-mapper import test.xlsx`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// a missing .env is fine
		_ = godotenv.Load()
		if !cmd.Flags().Changed("log-level") {
			if v := os.Getenv(logLevelEnv); v != "" {
				logLevel = v
			}
		}
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "logrus level, also read from "+logLevelEnv)
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "Sheet1", "name of the exported sheet")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// TestData is the record of the demo commands.
type TestData struct {
	Name string `x-header:"名称" x-comment:"Name"`
	Age  string `x-header:"年龄" x-comment:"Age"`
}

func newMapper() (*excel.Mapper[TestData], error) {
	return excel.NewMapper[TestData](excel.WithSheetName(sheetName))
}
