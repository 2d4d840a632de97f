package commands

import (
	"fmt"
	"os"
	"time"

	"joflow/internal/enrich"
	"joflow/internal/refmap"
	"joflow/internal/table"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	enrichSheet  string
	enrichMap    string
	enrichAsOf   string
	enrichSuffix string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <table-file>",
	Short: "Run the record enrichment pipeline over a table file",
	Long: `Loads a table (CSV, XLSX or JSON), runs the enrichment pipeline and writes
the result to the output directory in the same format, with a suffix token
appended to the base filename. A missing reference table disables region/MSP
resolution but does not fail the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runDate := time.Now()
		if enrichAsOf != "" {
			parsed, err := time.Parse("2006-01-02", enrichAsOf)
			if err != nil {
				return fmt.Errorf("invalid --as-of date %q: %w", enrichAsOf, err)
			}
			runDate = parsed
		}

		t, err := table.Load(args[0], table.Options{Sheet: enrichSheet, Fallback: cfg.FallbackEncoding})
		if err != nil {
			return err
		}

		mapPath := enrichMap
		if mapPath == "" {
			mapPath = cfg.MapPath
		}
		var maps *refmap.Maps
		if _, statErr := os.Stat(mapPath); statErr == nil {
			maps, err = refmap.Load(mapPath, cfg.FallbackEncoding)
			if err != nil {
				return err
			}
		} else {
			log.Warn().Str("path", mapPath).Msg("Reference table not found, region/MSP enrichment disabled")
		}

		res := enrich.Run(t, maps, runDate)

		dest, err := table.OutputPath(args[0], enrichSuffix, cfg.OutputDir)
		if err != nil {
			return err
		}
		if err := table.Save(t, dest); err != nil {
			return err
		}

		fmt.Printf("%s (%d rows, run %s)\n", dest, res.Rows, res.RunID)
		for _, w := range res.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichSheet, "sheet", "", "workbook sheet to load (first sheet if omitted)")
	enrichCmd.Flags().StringVar(&enrichMap, "map", "", "path to the reference table CSV (default: configured MAP_PATH)")
	enrichCmd.Flags().StringVar(&enrichAsOf, "as-of", "", "run date as YYYY-MM-DD (default: today)")
	enrichCmd.Flags().StringVar(&enrichSuffix, "suffix", "_processed", "output filename suffix token")
	rootCmd.AddCommand(enrichCmd)
}
