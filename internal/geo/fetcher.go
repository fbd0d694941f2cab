package geo

import (
	"context"
	"errors"

	"github.com/TerritoryScout/TS-Backend/internal/geo/provider"
	"github.com/TerritoryScout/TS-Backend/internal/metrics"
)

// ErrStale marks a boundary fetch whose result arrived after the broker
// navigated elsewhere. Callers drop the result; the fetch that the current
// view issued is the one that wins.
var ErrStale = errors.New("boundary fetch superseded by navigation")

// GenerationSource reports the current navigation generation. The territory
// Navigator satisfies this.
type GenerationSource interface {
	Generation() uint64
}

// Fetcher binds a boundary provider to a navigation generation source.
type Fetcher struct {
	Provider provider.BoundaryProvider
	Source   GenerationSource
}

// Fetch performs a boundary fetch tagged with the generation that issued it.
// If navigation has moved on by the time the provider answers, the result is
// discarded and ErrStale returned, regardless of whether the fetch succeeded.
func (f *Fetcher) Fetch(ctx context.Context, issued uint64, tier, parentKey string) (*provider.FeatureCollection, error) {
	fc, err := f.Provider.FetchBoundaries(ctx, tier, parentKey)
	if f.Source != nil && f.Source.Generation() != issued {
		metrics.StaleFetchDiscardsTotal.Inc()
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	return fc, nil
}
