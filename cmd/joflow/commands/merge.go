package commands

import (
	"fmt"

	"joflow/internal/merge"
	"joflow/internal/table"

	"github.com/spf13/cobra"
)

var (
	mergeOn     string
	mergeHow    string
	mergeSuffix string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <left> <right>",
	Short: "Merge two tables on a join key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		how, err := merge.ParseHow(mergeHow)
		if err != nil {
			return err
		}

		opts := table.Options{Fallback: cfg.FallbackEncoding}
		left, err := table.Load(args[0], opts)
		if err != nil {
			return err
		}
		right, err := table.Load(args[1], opts)
		if err != nil {
			return err
		}

		merged, err := merge.Tables(left, right, mergeOn, how)
		if err != nil {
			return err
		}

		dest, err := table.OutputPath(args[0], mergeSuffix, cfg.OutputDir)
		if err != nil {
			return err
		}
		if err := table.Save(merged, dest); err != nil {
			return err
		}
		fmt.Printf("%s (%d rows)\n", dest, len(merged.Rows))
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeOn, "on", "", "join key column present on both sides (required)")
	mergeCmd.Flags().StringVar(&mergeHow, "how", "left", "join mode: inner or left")
	mergeCmd.Flags().StringVar(&mergeSuffix, "suffix", "_merged", "output filename suffix token")
	_ = mergeCmd.MarkFlagRequired("on")
	rootCmd.AddCommand(mergeCmd)
}
