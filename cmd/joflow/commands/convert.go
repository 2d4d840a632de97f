package commands

import (
	"fmt"

	"joflow/internal/convert"

	"github.com/spf13/cobra"
)

var (
	convertSheet  string
	convertOutDir string
)

var convertCmd = &cobra.Command{
	Use:   "convert <workbook.xlsx>",
	Short: "Convert an Excel workbook to one CSV file per sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := convertOutDir
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		summary, err := convert.Workbook(args[0], outDir, convertSheet)
		if err != nil {
			return err
		}
		for _, f := range summary.Files {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertSheet, "sheet", "", "convert only the named sheet")
	convertCmd.Flags().StringVar(&convertOutDir, "out", "", "output directory (default: configured output dir)")
	rootCmd.AddCommand(convertCmd)
}
