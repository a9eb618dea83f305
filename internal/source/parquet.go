package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/common"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
)

const readerParallelism = 4

// ParquetFile reads a parquet file from the local filesystem.
type ParquetFile struct {
	path string
}

func NewParquetFile(path string) *ParquetFile {
	return &ParquetFile{path: path}
}

func (p *ParquetFile) Name() string { return p.path }

func (p *ParquetFile) Fingerprint(_ context.Context) (string, error) {
	info, err := os.Stat(p.path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", p.path, err)
	}
	return fmt.Sprintf("%s:%d:%d", p.path, info.Size(), info.ModTime().UnixNano()), nil
}

func (p *ParquetFile) Read(_ context.Context) (*Table, error) {
	fr, err := local.NewLocalFileReader(p.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.path, err)
	}
	defer fr.Close()

	return readParquet(filepath.Base(p.path), fr)
}

// readParquet decodes every top-level leaf column of a flat parquet file.
func readParquet(name string, pf source.ParquetFile) (*Table, error) {
	pr, err := reader.NewParquetColumnReader(pf, readerParallelism)
	if err != nil {
		return nil, fmt.Errorf("read parquet footer of %s: %w", name, err)
	}
	defer pr.ReadStop()

	num := pr.GetNumRows()
	root := pr.SchemaHandler.GetRootExName()
	table := NewTable(name)

	for _, col := range leafColumns(pr.Footer) {
		values := []any{}
		if num > 0 {
			values, _, _, err = pr.ReadColumnByPath(common.ReformPathStr(root+"."+col), num)
			if err != nil {
				return nil, fmt.Errorf("read column %s of %s: %w", col, name, err)
			}
		}
		if err := table.AddColumn(col, values); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func leafColumns(footer *parquet.FileMetaData) []string {
	var cols []string
	for i, el := range footer.GetSchema() {
		if i == 0 || el.GetNumChildren() > 0 {
			continue
		}
		cols = append(cols, el.GetName())
	}
	return cols
}
