package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chrisdamba/roaddash/internal/logger"
	"github.com/chrisdamba/roaddash/internal/models"
)

const serviceName = "roaddash"

var (
	cfgFile string
	cfg     *models.Config
	log     logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "roaddash",
	Short: "Road safety dashboard over accident, license and vehicle datasets",
	Long: `roaddash loads traffic accident, driving license and vehicle registration
datasets, computes descriptive statistics and a linear accident forecast, and
serves chart-ready JSON. It also generates synthetic datasets, inspects
dataset files and exports the dashboard to XLSX and PNG.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if !logger.ValidateLogLevel(cfg.Log.Level) {
			return fmt.Errorf("invalid log level %q", cfg.Log.Level)
		}
		log = logger.InitLogger(serviceName, cfg.Log.Level, os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./roaddash.yaml or ./config/roaddash.yaml)")
	rootCmd.PersistentFlags().String("log-level", "INFO", "log level: DEBUG, INFO, WARN or ERROR")
	rootCmd.PersistentFlags().String("data-dir", "data", "directory holding the dataset files")
	rootCmd.PersistentFlags().String("source", models.SourceLocal, "dataset source: local or s3")
	rootCmd.PersistentFlags().Int("min-year", 2020, "first accident year included")
	rootCmd.PersistentFlags().Int("max-year", 0, "last accident year included (0 tracks the current year)")

	bindFlags(rootCmd, map[string]string{
		"log-level": "log.level",
		"data-dir":  "data.dir",
		"source":    "data.source",
		"min-year":  "analysis.min_year",
		"max-year":  "analysis.max_year",
	}, true)
}

// bindFlags binds command flags to viper keys so flags override file and env
// values only when set.
func bindFlags(cmd *cobra.Command, keys map[string]string, persistent bool) {
	flags := cmd.Flags()
	if persistent {
		flags = cmd.PersistentFlags()
	}
	for flag, key := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}
