package commands

import (
	"joflow/internal/config"
	"joflow/internal/logging"
	"joflow/internal/rpc"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "joflow",
	Short: "joflow enriches job-order tables with ageing, segment and region/MSP data",
	Long: `A toolkit for job-order table processing: converts Excel workbooks to CSV,
merges tables on a join key, and runs the record enrichment pipeline
(identifier alignment, date ageing buckets, segment classification and
region/MSP lookups). Without a subcommand it serves the operations as tools
over a stdio JSON-RPC loop for a wrapping front-end.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("joflow starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("Tool server starting stdio loop")
		server := rpc.NewServer(cfg)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("Tool server terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
