package seed

import (
	"bytes"
	"context"
	"testing"

	"github.com/chrisdamba/roaddash/internal/cloudwriter"
	"github.com/chrisdamba/roaddash/internal/models"
	"github.com/chrisdamba/roaddash/internal/source"
)

func testSeedConfig() models.SeedConfig {
	return models.SeedConfig{Seed: 7, Accidents: 300, Licenses: 120, Vehicles: 80}
}

func TestAccidentsStayInsideYearRange(t *testing.T) {
	g := NewGenerator(testSeedConfig(), 2020, 2023, 2024, nil)

	rows := g.Accidents(500)
	if len(rows) != 500 {
		t.Fatalf("got %d rows", len(rows))
	}
	for i, r := range rows {
		if r.AccidentYear < 2020 || r.AccidentYear > 2023 {
			t.Fatalf("row %d: year %d out of range", i, r.AccidentYear)
		}
		if r.AccidentTime == nil || r.PerpetratorBirthYear == nil || r.Nationality == nil {
			t.Fatalf("row %d has empty cells with a zero null rate", i)
		}
		hour, ok := source.AsInt((*r.AccidentTime)[:2])
		if !ok || hour < 0 || hour > 23 {
			t.Fatalf("row %d: bad time %q", i, *r.AccidentTime)
		}
		age := int(r.AccidentYear - *r.PerpetratorBirthYear)
		if age < 18 || age > 90 {
			t.Fatalf("row %d: age %d", i, age)
		}
	}
}

func TestNullRateLeavesOptionalCellsEmpty(t *testing.T) {
	cfg := testSeedConfig()
	cfg.NullRate = 1
	g := NewGenerator(cfg, 2020, 2024, 2024, nil)

	for _, r := range g.Vehicles(20) {
		if r.Status != nil || r.BirthYear != nil {
			t.Fatal("expected empty optional cells")
		}
		if r.Total < 1 {
			t.Fatalf("total %d", r.Total)
		}
	}
}

func TestGeneratorIsDeterministicForASeed(t *testing.T) {
	a := NewGenerator(testSeedConfig(), 2020, 2024, 2024, nil).Licenses(50)
	b := NewGenerator(testSeedConfig(), 2020, 2024, 2024, nil).Licenses(50)
	for i := range a {
		if a[i].Total != b[i].Total || *a[i].LicenseType != *b[i].LicenseType {
			t.Fatalf("row %d differs between runs with the same seed", i)
		}
	}
}

func TestRunWritesReadableDatasets(t *testing.T) {
	dir := t.TempDir()
	data := models.DataConfig{
		Source:    models.SourceLocal,
		Dir:       dir,
		Accidents: "acc.parquet",
		Licenses:  "liz.parquet",
		Vehicles:  "veh.parquet",
	}
	out, err := NewParquetOutput(data)
	if err != nil {
		t.Fatal(err)
	}

	var progress bytes.Buffer
	summary, err := NewGenerator(testSeedConfig(), 2020, 2024, 2024, &progress).Run(out, data)
	if err != nil {
		t.Fatal(err)
	}
	if summary.RunID == "" || len(summary.Datasets) != 3 {
		t.Fatalf("summary = %+v", summary)
	}
	if progress.Len() == 0 {
		t.Error("no progress written")
	}

	want := map[string]int{"acc.parquet": 300, "liz.parquet": 120, "veh.parquet": 80}
	for _, ds := range summary.Datasets {
		table, err := source.NewParquetFile(ds.Location).Read(context.Background())
		if err != nil {
			t.Fatalf("read %s: %v", ds.Location, err)
		}
		if table.Rows() != want[ds.Name] {
			t.Errorf("%s: %d rows, want %d", ds.Name, table.Rows(), want[ds.Name])
		}
	}
}

type memoryWriter struct {
	bytes.Buffer
	closed bool
}

func (m *memoryWriter) Close() error {
	m.closed = true
	return nil
}

type memoryFactory struct {
	objects map[string]*memoryWriter
}

func (f *memoryFactory) NewWriter(bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	w := &memoryWriter{}
	f.objects[bucket+"/"+objectPath] = w
	return w, nil
}

func TestWriteDatasetToCloud(t *testing.T) {
	factory := &memoryFactory{objects: map[string]*memoryWriter{}}
	out := NewCloudParquetOutput(factory, "road-data", "raw")

	rows := NewGenerator(testSeedConfig(), 2020, 2024, 2024, nil).Vehicles(10)
	if err := WriteDataset(out, "veh.parquet", rows, nil); err != nil {
		t.Fatal(err)
	}

	obj, ok := factory.objects["road-data/raw/veh.parquet"]
	if !ok {
		t.Fatalf("object not created: %v", factory.objects)
	}
	if !obj.closed {
		t.Error("object not closed")
	}
	data := obj.Bytes()
	if len(data) < 8 || string(data[:4]) != "PAR1" || string(data[len(data)-4:]) != "PAR1" {
		t.Fatal("object is not a parquet file")
	}
	if got := out.Location("veh.parquet"); got != "s3://road-data/raw/veh.parquet" {
		t.Errorf("location = %s", got)
	}
}
