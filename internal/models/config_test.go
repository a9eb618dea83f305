package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roaddash.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `
data:
  dir: /srv/road
analysis:
  min_year: 2019
  max_year: 2023
  reference_date: "2024-03-01"
  forecast_years: [2024, 2025]
cache:
  size: 2
server:
  addr: ":9090"
  read_timeout: 3s
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.Dir != "/srv/road" || cfg.Data.Accidents != "acc.parquet" {
		t.Errorf("data = %+v", cfg.Data)
	}
	if diff := cmp.Diff([]int{2024, 2025}, cfg.Analysis.ForecastYears); diff != "" {
		t.Errorf("forecast years (-want +got):\n%s", diff)
	}
	if got := cfg.Analysis.CurrentYear(time.Now()); got != 2024 {
		t.Errorf("current year = %d", got)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ReadTimeout != 3*time.Second || cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Cache.Size != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("ROADDASH_ANALYSIS_MIN_YEAR", "2021")
	t.Setenv("ROADDASH_ANALYSIS_REFERENCE_DATE", "2030-01-01")
	path := writeConfig(t, "analysis:\n  min_year: 2019\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Analysis.MinYear != 2021 {
		t.Errorf("min year = %d", cfg.Analysis.MinYear)
	}
	minYear, maxYear := cfg.Analysis.YearRange(time.Now())
	if minYear != 2021 || maxYear != 2030 {
		t.Errorf("range = %d-%d", minYear, maxYear)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Data:     DataConfig{Source: SourceLocal},
		Analysis: AnalysisConfig{MinYear: 2020},
		Cache:    CacheConfig{Size: 1},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := map[string]func(*Config){
		"s3 without bucket": func(c *Config) { c.Data.Source = SourceS3 },
		"unknown source":    func(c *Config) { c.Data.Source = "ftp" },
		"inverted years":    func(c *Config) { c.Analysis.MaxYear = 2010 },
		"zero cache size":   func(c *Config) { c.Cache.Size = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestBucketSpecs(t *testing.T) {
	for _, specs := range [][]BucketSpec{DriverAgeBuckets, VehicleAgeBuckets} {
		for v := specs[0].Min; v <= 150; v++ {
			hits := 0
			for _, b := range specs {
				if b.Contains(v) {
					hits++
				}
			}
			if hits != 1 {
				t.Fatalf("value %d falls into %d buckets", v, hits)
			}
		}
	}
	if ClipAge(5) != MinAge || ClipAge(130) != MaxAge || ClipAge(40) != 40 {
		t.Error("ClipAge out of range")
	}
}
