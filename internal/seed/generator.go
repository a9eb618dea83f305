package seed

import (
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/chrisdamba/roaddash/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
)

// Generator produces synthetic accident, license and vehicle datasets with
// the column layout the dashboard reads.
type Generator struct {
	cfg         models.SeedConfig
	minYear     int
	maxYear     int
	currentYear int
	fake        faker.Faker
	rng         *rand.Rand
	progress    io.Writer
	runID       string
}

type DatasetSummary struct {
	Name     string
	Location string
	Rows     int
}

type Summary struct {
	RunID    string
	Datasets []DatasetSummary
}

func NewGenerator(cfg models.SeedConfig, minYear, maxYear, currentYear int, progress io.Writer) *Generator {
	if progress == nil {
		progress = io.Discard
	}
	return &Generator{
		cfg:         cfg,
		minYear:     minYear,
		maxYear:     maxYear,
		currentYear: currentYear,
		fake:        faker.NewWithSeed(rand.NewSource(cfg.Seed)),
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		progress:    progress,
		runID:       cuid.New(),
	}
}

func (g *Generator) RunID() string { return g.runID }

// Run writes the three datasets under the names given in data.
func (g *Generator) Run(out *ParquetOutput, data models.DataConfig) (Summary, error) {
	summary := Summary{RunID: g.runID}

	if err := writeWithProgress(g, out, data.Accidents, g.Accidents(g.cfg.Accidents), &summary); err != nil {
		return summary, err
	}
	if err := writeWithProgress(g, out, data.Licenses, g.Licenses(g.cfg.Licenses), &summary); err != nil {
		return summary, err
	}
	if err := writeWithProgress(g, out, data.Vehicles, g.Vehicles(g.cfg.Vehicles), &summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func writeWithProgress[T any](g *Generator, out *ParquetOutput, name string, rows []T, summary *Summary) error {
	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetWriter(g.progress),
		progressbar.OptionSetDescription(name),
		progressbar.OptionShowCount(),
	)
	err := WriteDataset(out, name, rows, func() { _ = bar.Add(1) })
	_ = bar.Finish()
	fmt.Fprintln(g.progress)
	if err != nil {
		return err
	}

	summary.Datasets = append(summary.Datasets, DatasetSummary{Name: name, Location: out.Location(name), Rows: len(rows)})
	return nil
}

func (g *Generator) Accidents(n int) []AccidentRow {
	rows := make([]AccidentRow, n)
	for i := range rows {
		year := g.fake.IntBetween(g.minYear, g.maxYear)
		rows[i] = AccidentRow{AccidentYear: int64(year)}

		if !g.null() {
			t := fmt.Sprintf("%02d:%02d", g.weightedHour(), g.fake.IntBetween(0, 59))
			rows[i].AccidentTime = &t
		}
		if !g.null() {
			by := int64(year - g.driverAge())
			rows[i].PerpetratorBirthYear = &by
		}
		if !g.null() {
			nat := g.fake.RandomStringElement(NationalityGroups)
			rows[i].Nationality = &nat
		}
	}
	return rows
}

func (g *Generator) Licenses(n int) []LicenseRow {
	rows := make([]LicenseRow, n)
	for i := range rows {
		rows[i] = LicenseRow{Total: int64(g.fake.IntBetween(1, 500))}
		if !g.null() {
			by := int64(g.currentYear - g.driverAge())
			rows[i].BirthYear = &by
		}
		if !g.null() {
			nat := g.fake.RandomStringElement(NationalityGroups)
			rows[i].Nationality = &nat
		}
		if !g.null() {
			lt := g.fake.RandomStringElement(LicenseTypes)
			rows[i].LicenseType = &lt
		}
	}
	return rows
}

func (g *Generator) Vehicles(n int) []VehicleRow {
	statuses := make([]string, 0, len(VehicleStatusWeights))
	for s := range VehicleStatusWeights {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)

	rows := make([]VehicleRow, n)
	for i := range rows {
		rows[i] = VehicleRow{Total: int64(g.fake.IntBetween(1, 200))}
		if !g.null() {
			by := int64(g.currentYear - g.fake.IntBetween(0, 30))
			rows[i].BirthYear = &by
		}
		if !g.null() {
			status := g.weightedStatus(statuses)
			rows[i].Status = &status
		}
	}
	return rows
}

func (g *Generator) null() bool {
	return g.rng.Float64() < g.cfg.NullRate
}

func (g *Generator) weightedHour() int {
	var total float64
	for _, w := range AccidentHourProfile {
		total += w
	}
	r := g.rng.Float64() * total
	for hour, w := range AccidentHourProfile {
		if r < w {
			return hour
		}
		r -= w
	}
	return 23
}

func (g *Generator) driverAge() int {
	r := g.rng.Float64()
	for _, b := range driverAgeWeights {
		if r < b.weight {
			return g.fake.IntBetween(b.min, b.max)
		}
		r -= b.weight
	}
	last := driverAgeWeights[len(driverAgeWeights)-1]
	return g.fake.IntBetween(last.min, last.max)
}

func (g *Generator) weightedStatus(statuses []string) string {
	r := g.rng.Float64()
	for _, s := range statuses {
		w := VehicleStatusWeights[s]
		if r < w {
			return s
		}
		r -= w
	}
	return statuses[len(statuses)-1]
}
