package provider

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrMissingDataDir   = errors.New("BOUNDARY_DATA_DIR is required for the static provider")
	ErrUnknownProvider  = errors.New("unknown boundary provider type")
	ErrTierNotSupported = errors.New("boundary tier not supported by this provider")
)

// BoundaryProvider supplies named polygon geometry per hierarchy tier. It is
// the one external collaborator of the availability engine; implementations
// may return an empty collection, never a partial panic.
type BoundaryProvider interface {
	// Name returns the provider name for logging purposes.
	Name() string

	// FetchBoundaries fetches the named features for one tier. parentKey
	// narrows the fetch (the state code for county/city/zip tiers) and is
	// ignored for the state tier.
	FetchBoundaries(ctx context.Context, tier, parentKey string) (*FeatureCollection, error)

	// HealthCheck verifies the provider can reach its geometry source.
	HealthCheck(ctx context.Context) error
}

// providerRegistry holds registered provider constructors, so new geometry
// sources register themselves from init() without touching this file.
var providerRegistry = make(map[ProviderType]func(Config) (BoundaryProvider, error))

func RegisterProvider(providerType ProviderType, constructor func(Config) (BoundaryProvider, error)) {
	providerRegistry[providerType] = constructor
}

// NewProvider creates a BoundaryProvider from the configuration.
func NewProvider(cfg Config) (BoundaryProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	constructor, ok := providerRegistry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	return constructor(cfg)
}
