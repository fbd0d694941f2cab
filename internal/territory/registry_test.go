package territory

import (
	"testing"

	"github.com/TerritoryScout/TS-Backend/internal/geo/provider"
)

func namedFeature(name string) provider.Feature {
	return provider.Feature{Type: "Feature", Properties: map[string]any{"NAME": name}}
}

func TestBuildRegistryStateTierJoin(t *testing.T) {
	r := newTestResolver([]string{"CA"},
		ck("TX", "Travis", "Austin", "78701", "Available"),
		ck("CA", "Alameda", "Oakland", "94601", "Available"),
	)
	fc := &provider.FeatureCollection{
		Type: "FeatureCollection",
		Features: []provider.Feature{
			namedFeature("Texas"),
			namedFeature("California"),
			namedFeature("Wyoming"),
		},
	}

	regions := r.BuildRegistry(TierState, Scope{}, fc)
	byName := make(map[string]RenderableRegion, len(regions))
	for _, region := range regions {
		byName[region.Name] = region
	}

	tx, ok := byName["TX"]
	if !ok {
		t.Fatalf("regions = %v", regions)
	}
	if tx.Feature == nil || tx.Feature.Name() != "Texas" {
		t.Errorf("TX did not join its full-name feature: %+v", tx.Feature)
	}
	if tx.Status != StatusAvailable {
		t.Errorf("TX status = %s", tx.Status)
	}

	if _, dup := byName["Texas"]; dup {
		t.Error("full-name geometry leaked in as a duplicate region")
	}

	ca := byName["CA"]
	if ca.Feature == nil || ca.Status != StatusMixed {
		t.Errorf("CA = %+v", ca)
	}

	// Geometry-only state: present, carrying its polygon and the bare default.
	wy := byName["Wyoming"]
	if wy.Feature == nil || wy.Status != StatusAvailable {
		t.Errorf("Wyoming = %+v", wy)
	}
}

func TestBuildRegistryCountyTier(t *testing.T) {
	r := newTestResolver(nil,
		ck("TX", "Travis", "Austin", "78701", "Available"),
		ck("TX", "Harris", "Houston", "77001", "Not Available"),
	)
	fc := &provider.FeatureCollection{
		Type:     "FeatureCollection",
		Features: []provider.Feature{namedFeature("Travis County")},
	}

	regions := r.BuildRegistry(TierCounty, Scope{State: "TX"}, fc)
	byName := make(map[string]RenderableRegion, len(regions))
	for _, region := range regions {
		byName[region.Name] = region
	}

	travis := byName["Travis"]
	if travis.Feature == nil {
		t.Error("suffixed county feature did not join the data entry")
	}
	if travis.Status != StatusAvailable {
		t.Errorf("Travis status = %s", travis.Status)
	}
	if harris := byName["Harris"]; harris.Feature != nil {
		t.Errorf("Harris has no geometry; got %+v", harris.Feature)
	}
}
