package tigerweb

import (
	"context"
	"fmt"

	"github.com/TerritoryScout/TS-Backend/internal/geo/provider"
)

func init() {
	provider.RegisterProvider(provider.ProviderTIGERweb, func(cfg provider.Config) (provider.BoundaryProvider, error) {
		return &Provider{client: NewClient(cfg.RequestsPerSecond)}, nil
	})
}

// Provider adapts the TIGERweb client to the BoundaryProvider interface.
type Provider struct {
	client *Client
}

func (p *Provider) Name() string { return "tigerweb" }

func (p *Provider) FetchBoundaries(ctx context.Context, tier, parentKey string) (*provider.FeatureCollection, error) {
	return p.client.Query(ctx, tier, parentKey)
}

func (p *Provider) HealthCheck(ctx context.Context) error {
	fc, err := p.client.Query(ctx, provider.TierState, "")
	if err != nil {
		return fmt.Errorf("tigerweb health check: %w", err)
	}
	if len(fc.Features) == 0 {
		return fmt.Errorf("tigerweb health check: state layer came back empty")
	}
	return nil
}
