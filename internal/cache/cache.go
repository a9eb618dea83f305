package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/bluele/gcache"

	"github.com/chrisdamba/roaddash/internal/loader"
	"github.com/chrisdamba/roaddash/internal/metrics"
	"github.com/chrisdamba/roaddash/internal/models"
)

// Loader is the read side the cache wraps.
type Loader interface {
	Params() loader.Params
	Fingerprint(ctx context.Context, p loader.Params) (string, error)
	Load(ctx context.Context, p loader.Params) (*models.Datasets, error)
}

// Datasets is a bounded read-through cache of loaded collections. Entries are
// keyed by the loader fingerprint, so a changed source is never served stale.
type Datasets struct {
	loader Loader
	store  gcache.Cache
}

func New(loader Loader, size int) *Datasets {
	if size <= 0 {
		size = 1
	}
	return &Datasets{
		loader: loader,
		store:  gcache.New(size).Simple().Build(),
	}
}

// Get returns the collections for the current state of the sources, loading
// them on a miss. Failed loads are not cached. Params are resolved once per
// call so the key and the load always agree.
func (d *Datasets) Get(ctx context.Context) (*models.Datasets, error) {
	params := d.loader.Params()
	key, err := d.loader.Fingerprint(ctx, params)
	if err != nil {
		return nil, err
	}

	value, err := d.store.Get(key)
	if err == nil {
		if ds, ok := value.(*models.Datasets); ok {
			metrics.RecordCacheLookup(true)
			return ds, nil
		}
	} else if !errors.Is(err, gcache.KeyNotFoundError) {
		return nil, fmt.Errorf("dataset cache: %w", err)
	}
	metrics.RecordCacheLookup(false)

	ds, err := d.loader.Load(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := d.store.Set(key, ds); err != nil {
		return nil, fmt.Errorf("dataset cache: %w", err)
	}
	return ds, nil
}

// Invalidate drops every cached entry.
func (d *Datasets) Invalidate() {
	d.store.Purge()
}

func (d *Datasets) Len() int {
	return d.store.Len(false)
}
