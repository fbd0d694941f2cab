package territory

import (
	"github.com/TerritoryScout/TS-Backend/internal/geo/provider"
)

// RenderableRegion is one child region of the current view, with everything
// the render layer needs: resolved status, polygon geometry when available,
// and check coordinates as a point-marker fallback when it is not.
type RenderableRegion struct {
	Name    string            `json:"name"`
	Status  Status            `json:"status"`
	Blanket *Check            `json:"blanket,omitempty"`
	Feature *provider.Feature `json:"feature,omitempty"`
	Points  []Coordinate      `json:"points,omitempty"`
}

// BuildRegistry computes the declarative render registry for one view: the
// children of the scope at the given tier, each joined with its geometry
// feature and resolved bottom-up. The registry is rebuilt from scratch on
// every navigation change; it holds no state of its own, so hover highlights
// and other render effects derive from it instead of mutating it.
func (r *Resolver) BuildRegistry(tier Tier, scope Scope, fc *provider.FeatureCollection) []RenderableRegion {
	// State features are named "Texas" while dataset entries say "TX"; the
	// state tier folds through the USPS table so the join lands.
	fold := foldName
	if tier == TierState {
		fold = foldStateName
	}

	featuresByFold := make(map[string]*provider.Feature)
	if fc != nil {
		for i := range fc.Features {
			if n := fc.Features[i].Name(); n != "" {
				featuresByFold[fold(n)] = &fc.Features[i]
			}
		}
	}

	names := r.ListChildren(tier, scope, fc.Names())
	regions := make([]RenderableRegion, 0, len(names))
	for _, name := range names {
		childScope := scope
		switch tier {
		case TierState:
			childScope = Scope{State: name}
		case TierCounty:
			childScope.County = name
			childScope.City, childScope.Zip = "", ""
		case TierCity:
			childScope.City = name
			childScope.Zip = ""
		case TierZip:
			childScope.Zip = name
		}

		region := RenderableRegion{
			Name:    name,
			Status:  r.Resolve(childScope),
			Blanket: r.FindBlanketCheck(childScope),
			Feature: featuresByFold[fold(name)],
		}
		if region.Feature == nil {
			// No polygon for this region: fall back to point markers.
			for _, c := range r.ds.ChecksIn(childScope) {
				if c.Coordinate != nil {
					region.Points = append(region.Points, *c.Coordinate)
				}
			}
		}
		regions = append(regions, region)
	}
	return regions
}
