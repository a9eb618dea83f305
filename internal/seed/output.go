package seed

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/chrisdamba/roaddash/internal/cloudwriter"
	"github.com/chrisdamba/roaddash/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

const writerParallelism = 4

// ParquetOutput creates dataset files either in a local directory or as
// objects in a cloud bucket.
type ParquetOutput struct {
	basePath           string
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
	cloudPrefix        string
}

func NewParquetOutput(cfg models.DataConfig) (*ParquetOutput, error) {
	p := &ParquetOutput{basePath: cfg.Dir}

	if cfg.Source != models.SourceLocal {
		var factory cloudwriter.CloudWriterFactory
		var err error

		switch cfg.CloudStorage.Provider {
		case "s3":
			factory, err = cloudwriter.NewS3WriterFactory(cfg.CloudStorage.Region)
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}

		p.cloudWriterFactory = factory
		p.cloudBucketName = cfg.CloudStorage.BucketName
		p.cloudPrefix = cfg.CloudStorage.Prefix
	}

	return p, nil
}

// NewCloudParquetOutput writes through an existing factory.
func NewCloudParquetOutput(factory cloudwriter.CloudWriterFactory, bucket, prefix string) *ParquetOutput {
	return &ParquetOutput{cloudWriterFactory: factory, cloudBucketName: bucket, cloudPrefix: prefix}
}

// Location describes where a dataset named name ends up.
func (p *ParquetOutput) Location(name string) string {
	if p.cloudWriterFactory != nil {
		return "s3://" + p.cloudBucketName + "/" + path.Join(p.cloudPrefix, name)
	}
	return filepath.Join(p.basePath, name)
}

func (p *ParquetOutput) createFile(name string) (source.ParquetFile, error) {
	if p.cloudWriterFactory != nil {
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, path.Join(p.cloudPrefix, name))
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return NewCloudParquetFile(cw), nil
	}

	if err := os.MkdirAll(p.basePath, os.ModePerm); err != nil {
		return nil, err
	}
	fw, err := local.NewLocalFileWriter(filepath.Join(p.basePath, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	return fw, nil
}

// WriteDataset writes rows as the dataset name. progress is advanced once
// per row and may be nil.
func WriteDataset[T any](p *ParquetOutput, name string, rows []T, progress func()) error {
	fw, err := p.createFile(name)
	if err != nil {
		return err
	}
	if err := writeRows(fw, rows, progress); err != nil {
		fw.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// WriteParquetFile writes rows to a local parquet file using the schema
// declared by T's struct tags.
func WriteParquetFile[T any](filePath string, rows []T) error {
	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return fmt.Errorf("failed to create local file writer: %w", err)
	}
	if err := writeRows(fw, rows, nil); err != nil {
		fw.Close()
		return err
	}
	return fw.Close()
}

func writeRows[T any](fw source.ParquetFile, rows []T, progress func()) error {
	pw, err := writer.NewParquetWriter(fw, new(T), writerParallelism)
	if err != nil {
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range rows {
		if err := pw.Write(rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
		if progress != nil {
			progress()
		}
	}
	return pw.WriteStop()
}

// CloudParquetFile adapts a CloudWriter to the parquet writer. Objects are
// only ever written front to back.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

func (c *CloudParquetFile) Open(string) (source.ParquetFile, error)   { return c, nil }
func (c *CloudParquetFile) Create(string) (source.ParquetFile, error) { return c, nil }

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read([]byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
