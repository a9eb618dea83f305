package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/roaddash/internal/logger"
	"github.com/chrisdamba/roaddash/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate synthetic accident, license and vehicle datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logger.WithAction(cmd.Context(), "seed")

		out, err := seed.NewParquetOutput(cfg.Data)
		if err != nil {
			return err
		}

		now := time.Now()
		minYear, maxYear := cfg.Analysis.YearRange(now)
		gen := seed.NewGenerator(cfg.Seed, minYear, maxYear, cfg.Analysis.CurrentYear(now), os.Stderr)

		log.Info(ctx, "generating datasets",
			"run_id", gen.RunID(),
			"seed", cfg.Seed.Seed,
			"accidents", cfg.Seed.Accidents,
			"licenses", cfg.Seed.Licenses,
			"vehicles", cfg.Seed.Vehicles,
		)

		summary, err := gen.Run(out, cfg.Data)
		if err != nil {
			log.Error(ctx, "seed failed", err, "run_id", summary.RunID)
			return err
		}
		for _, ds := range summary.Datasets {
			log.Info(ctx, "dataset written", "run_id", summary.RunID, "name", ds.Name, "location", ds.Location, "rows", ds.Rows)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().Int64("seed", 42, "random seed")
	seedCmd.Flags().Int("accidents", 20000, "accident rows")
	seedCmd.Flags().Int("licenses", 5000, "license rows")
	seedCmd.Flags().Int("vehicles", 5000, "vehicle rows")
	seedCmd.Flags().Float64("null-rate", 0.02, "share of optional cells left empty")
	bindFlags(seedCmd, map[string]string{
		"seed":      "seed.seed",
		"accidents": "seed.accidents",
		"licenses":  "seed.licenses",
		"vehicles":  "seed.vehicles",
		"null-rate": "seed.null_rate",
	}, false)
	rootCmd.AddCommand(seedCmd)
}
