package static

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TerritoryScout/TS-Backend/internal/geo/provider"
)

func init() {
	provider.RegisterProvider(provider.ProviderStatic, func(cfg provider.Config) (provider.BoundaryProvider, error) {
		return &Provider{dataDir: cfg.DataDir}, nil
	})
}

// Provider serves boundary geometry from pre-downloaded GeoJSON files,
// for air-gapped deploys and tests. File layout:
//
//	<dir>/state.geojson
//	<dir>/county_TX.geojson
//	<dir>/city_TX.geojson
//	<dir>/zip_TX.geojson
//
// A missing file yields an empty collection, which downstream treats as
// "render point markers instead".
type Provider struct {
	dataDir string
}

func (p *Provider) Name() string { return "static" }

func (p *Provider) FetchBoundaries(_ context.Context, tier, parentKey string) (*provider.FeatureCollection, error) {
	name := tier + ".geojson"
	if parentKey != "" {
		name = fmt.Sprintf("%s_%s.geojson", tier, strings.ToUpper(strings.TrimSpace(parentKey)))
	}
	raw, err := os.ReadFile(filepath.Join(p.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return provider.Empty(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	var fc provider.FeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if fc.Type == "" {
		fc.Type = "FeatureCollection"
	}
	return &fc, nil
}

func (p *Provider) HealthCheck(_ context.Context) error {
	info, err := os.Stat(p.dataDir)
	if err != nil {
		return fmt.Errorf("static boundary dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static boundary path %s is not a directory", p.dataDir)
	}
	return nil
}
