package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chrisdamba/roaddash/internal/seed"
)

func ptr[T any](v T) *T { return &v }

func writeVehicles(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "veh.parquet")
	rows := []seed.VehicleRow{
		{BirthYear: ptr(int64(2019)), Status: ptr("ACTIVE"), Total: 10},
		{BirthYear: nil, Status: ptr("SUSPENDED"), Total: 3},
		{BirthYear: ptr(int64(2001)), Status: nil, Total: 5},
	}
	if err := seed.WriteParquetFile(path, rows); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParquetFileRead(t *testing.T) {
	path := writeVehicles(t)

	table, err := NewParquetFile(path).Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if table.Rows() != 3 {
		t.Fatalf("rows = %d", table.Rows())
	}
	for _, col := range []string{"BIRTH_YEAR", "STATUS", "TOTAL"} {
		if !table.Has(col) {
			t.Errorf("missing column %s, have %v", col, table.Columns())
		}
	}
	if v, ok := AsInt(table.Value("BIRTH_YEAR", 0)); !ok || v != 2019 {
		t.Errorf("BIRTH_YEAR[0] = %v", table.Value("BIRTH_YEAR", 0))
	}
	if table.Value("BIRTH_YEAR", 1) != nil {
		t.Errorf("BIRTH_YEAR[1] = %v, want nil", table.Value("BIRTH_YEAR", 1))
	}
	if AsString(table.Value("STATUS", 1)) != "SUSPENDED" {
		t.Errorf("STATUS[1] = %v", table.Value("STATUS", 1))
	}
	if v, _ := AsInt64(table.Value("TOTAL", 2)); v != 5 {
		t.Errorf("TOTAL[2] = %v", table.Value("TOTAL", 2))
	}
}

func TestParquetFileReadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if err := seed.WriteParquetFile(path, []seed.VehicleRow{}); err != nil {
		t.Fatal(err)
	}
	table, err := NewParquetFile(path).Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if table.Rows() != 0 || !table.Has("TOTAL") {
		t.Fatalf("rows = %d, columns = %v", table.Rows(), table.Columns())
	}
}

func TestParquetFileMissing(t *testing.T) {
	src := NewParquetFile(filepath.Join(t.TempDir(), "nope.parquet"))
	if _, err := src.Read(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := src.Fingerprint(context.Background()); err == nil {
		t.Fatal("expected fingerprint error for missing file")
	}
}

func TestParquetFileFingerprintTracksChanges(t *testing.T) {
	path := writeVehicles(t)
	src := NewParquetFile(path)

	before, err := src.Fingerprint(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	after, err := src.Fingerprint(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if before == after {
		t.Fatal("fingerprint did not change after modification")
	}
}

type fakeObjects struct {
	data map[string][]byte
	etag string
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.data[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(body)))}, nil
}

func (f *fakeObjects) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.data[aws.ToString(in.Key)]; !ok {
		return nil, errors.New("NotFound")
	}
	return &s3.HeadObjectOutput{ETag: aws.String(f.etag)}, nil
}

func TestS3ObjectRead(t *testing.T) {
	data, err := os.ReadFile(writeVehicles(t))
	if err != nil {
		t.Fatal(err)
	}
	api := &fakeObjects{data: map[string][]byte{"raw/veh.parquet": data}, etag: `"abc"`}
	obj := NewS3Object(api, "road-data", "raw/veh.parquet")

	table, err := obj.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if table.Rows() != 3 || !table.Has("STATUS") {
		t.Fatalf("rows = %d, columns = %v", table.Rows(), table.Columns())
	}

	fp1, err := obj.Fingerprint(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	api.etag = `"def"`
	fp2, _ := obj.Fingerprint(context.Background())
	if fp1 == fp2 {
		t.Error("fingerprint should follow the ETag")
	}

	missing := NewS3Object(api, "road-data", "raw/acc.parquet")
	if _, err := missing.Read(context.Background()); err == nil {
		t.Error("expected error for missing object")
	}
}
