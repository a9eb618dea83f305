package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/chrisdamba/roaddash/internal/loader"
	"github.com/chrisdamba/roaddash/internal/models"
)

type countingLoader struct {
	version int
	year    int
	loads   int
	err     error
	loaded  []loader.Params
}

func (c *countingLoader) Params() loader.Params {
	year := c.year
	if year == 0 {
		year = 2024
	}
	return loader.Params{MinYear: 2020, MaxYear: year, CurrentYear: year}
}

func (c *countingLoader) Fingerprint(_ context.Context, p loader.Params) (string, error) {
	return fmt.Sprintf("%s|v%d", p, c.version), nil
}

func (c *countingLoader) Load(_ context.Context, p loader.Params) (*models.Datasets, error) {
	c.loads++
	c.loaded = append(c.loaded, p)
	if c.err != nil {
		return nil, c.err
	}
	return &models.Datasets{MaxYear: p.MaxYear, CurrentYear: 2024 + c.version}, nil
}

func TestCacheServesUnchangedSources(t *testing.T) {
	l := &countingLoader{}
	c := New(l, 2)

	first, err := c.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the same collections for unchanged sources")
	}
	if l.loads != 1 {
		t.Errorf("loads = %d, want 1", l.loads)
	}
}

func TestCacheReloadsAfterFingerprintChange(t *testing.T) {
	l := &countingLoader{}
	c := New(l, 2)

	first, _ := c.Get(context.Background())
	l.version++
	second, err := c.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first == second || second.CurrentYear != 2025 {
		t.Errorf("expected a fresh load, got %+v", second)
	}
	if l.loads != 2 {
		t.Errorf("loads = %d, want 2", l.loads)
	}
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	l := &countingLoader{err: models.ErrDataUnavailable}
	c := New(l, 2)

	if _, err := c.Get(context.Background()); !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("len = %d after failed load", c.Len())
	}

	l.err = nil
	if _, err := c.Get(context.Background()); err != nil {
		t.Fatal(err)
	}
	if l.loads != 2 {
		t.Errorf("loads = %d, want 2", l.loads)
	}
}

func TestCacheIsBoundedAndPurges(t *testing.T) {
	l := &countingLoader{}
	c := New(l, 2)
	for i := 0; i < 5; i++ {
		l.version = i
		if _, err := c.Get(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() > 2 {
		t.Errorf("len = %d, want at most 2", c.Len())
	}

	c.Invalidate()
	if c.Len() != 0 {
		t.Errorf("len = %d after invalidate", c.Len())
	}
}

func TestCacheReloadsAcrossYearBoundary(t *testing.T) {
	l := &countingLoader{year: 2023}
	c := New(l, 2)

	first, err := c.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(context.Background()); err != nil {
		t.Fatal(err)
	}
	if l.loads != 1 {
		t.Fatalf("loads = %d, want 1", l.loads)
	}

	l.year = 2024
	second, err := c.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.MaxYear != 2023 || second.MaxYear != 2024 {
		t.Errorf("max years = %d, %d", first.MaxYear, second.MaxYear)
	}
	if l.loads != 2 || l.loaded[1].CurrentYear != 2024 {
		t.Errorf("loads = %d, params = %+v", l.loads, l.loaded)
	}
}
