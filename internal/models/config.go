package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	SourceLocal = "local"
	SourceS3    = "s3"
)

type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type DataConfig struct {
	Source       string             `mapstructure:"source"` // local or s3
	Dir          string             `mapstructure:"dir"`
	Accidents    string             `mapstructure:"accidents"`
	Licenses     string             `mapstructure:"licenses"`
	Vehicles     string             `mapstructure:"vehicles"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
	Prefix     string `mapstructure:"prefix"`
}

type AnalysisConfig struct {
	MinYear int `mapstructure:"min_year"`
	MaxYear int `mapstructure:"max_year"` // 0 tracks the current year
	// ReferenceDate pins "today" for age derivation; zero means the wall clock.
	ReferenceDate time.Time `mapstructure:"reference_date"`
	// ForecastYears are the target years of the trend model. A 0 entry means
	// the year after the last observed one.
	ForecastYears []int `mapstructure:"forecast_years"`
}

type CacheConfig struct {
	Size int `mapstructure:"size"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SeedConfig struct {
	Seed      int64   `mapstructure:"seed"`
	Accidents int     `mapstructure:"accidents"`
	Licenses  int     `mapstructure:"licenses"`
	Vehicles  int     `mapstructure:"vehicles"`
	NullRate  float64 `mapstructure:"null_rate"` // share of optional cells left empty
}

// CurrentYear resolves the year used for age derivation.
func (a AnalysisConfig) CurrentYear(now time.Time) int {
	if !a.ReferenceDate.IsZero() {
		return a.ReferenceDate.Year()
	}
	return now.Year()
}

// YearRange returns the closed accident year window.
func (a AnalysisConfig) YearRange(now time.Time) (int, int) {
	maxYear := a.MaxYear
	if maxYear == 0 {
		maxYear = a.CurrentYear(now)
	}
	return a.MinYear, maxYear
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.source", SourceLocal)
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.accidents", "acc.parquet")
	v.SetDefault("data.licenses", "liz.parquet")
	v.SetDefault("data.vehicles", "veh.parquet")
	v.SetDefault("data.cloud_storage.provider", "s3")
	v.SetDefault("data.cloud_storage.region", "eu-central-1")
	v.SetDefault("data.cloud_storage.bucket_name", "")
	v.SetDefault("data.cloud_storage.prefix", "")

	v.SetDefault("analysis.min_year", 2020)
	v.SetDefault("analysis.max_year", 0)
	v.SetDefault("analysis.forecast_years", []int{2024})

	v.SetDefault("cache.size", 4)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("log.level", "INFO")

	v.SetDefault("seed.seed", 42)
	v.SetDefault("seed.accidents", 20000)
	v.SetDefault("seed.licenses", 5000)
	v.SetDefault("seed.vehicles", 5000)
	v.SetDefault("seed.null_rate", 0.02)
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("config")
		viper.SetConfigName("roaddash")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ROADDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("analysis.reference_date"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.DateOnly),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (cfg *Config) Validate() error {
	switch cfg.Data.Source {
	case SourceLocal:
	case SourceS3:
		if cfg.Data.CloudStorage.BucketName == "" {
			return errors.New("data.cloud_storage.bucket_name is required for the s3 source")
		}
	default:
		return fmt.Errorf("unsupported data source: %s", cfg.Data.Source)
	}
	if cfg.Analysis.MaxYear != 0 && cfg.Analysis.MaxYear < cfg.Analysis.MinYear {
		return fmt.Errorf("analysis.max_year %d is before analysis.min_year %d", cfg.Analysis.MaxYear, cfg.Analysis.MinYear)
	}
	if cfg.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive, got %d", cfg.Cache.Size)
	}
	return nil
}
