package source

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/chrisdamba/roaddash/internal/models"
)

// Source yields one dataset as a Table.
type Source interface {
	Name() string
	// Fingerprint changes whenever the underlying data changes.
	Fingerprint(ctx context.Context) (string, error)
	Read(ctx context.Context) (*Table, error)
}

// Set groups the three dashboard datasets.
type Set struct {
	Accidents Source
	Licenses  Source
	Vehicles  Source
}

// NewSet builds the dataset sources described by the data configuration.
func NewSet(ctx context.Context, cfg models.DataConfig) (Set, error) {
	switch cfg.Source {
	case models.SourceLocal:
		return Set{
			Accidents: NewParquetFile(filepath.Join(cfg.Dir, cfg.Accidents)),
			Licenses:  NewParquetFile(filepath.Join(cfg.Dir, cfg.Licenses)),
			Vehicles:  NewParquetFile(filepath.Join(cfg.Dir, cfg.Vehicles)),
		}, nil
	case models.SourceS3:
		client, err := NewS3Client(ctx, cfg.CloudStorage.Region)
		if err != nil {
			return Set{}, err
		}
		bucket, prefix := cfg.CloudStorage.BucketName, cfg.CloudStorage.Prefix
		return Set{
			Accidents: NewS3Object(client, bucket, path.Join(prefix, cfg.Accidents)),
			Licenses:  NewS3Object(client, bucket, path.Join(prefix, cfg.Licenses)),
			Vehicles:  NewS3Object(client, bucket, path.Join(prefix, cfg.Vehicles)),
		}, nil
	default:
		return Set{}, fmt.Errorf("unsupported data source: %s", cfg.Source)
	}
}
