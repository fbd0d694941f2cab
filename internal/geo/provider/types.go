package provider

import "encoding/json"

// Tier key strings, shared with the territory package's hierarchy.
const (
	TierState  = "state"
	TierCounty = "county"
	TierCity   = "city"
	TierZip    = "zip"
)

// FeatureCollection is the slice of GeoJSON this engine actually needs:
// named features whose geometry passes through untouched. The engine joins on
// names; drawing polygons is the render layer's problem.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry,omitempty"`
}

// Empty returns a valid, zero-feature collection. Callers receiving one fall
// back to point-marker rendering.
func Empty() *FeatureCollection {
	return &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// nameProperties are tried in order; different Census layers label features
// differently.
var nameProperties = []string{"NAME", "name", "BASENAME", "NAMELSAD", "GEOID"}

// Name extracts the feature's display name, or "".
func (f Feature) Name() string {
	for _, key := range nameProperties {
		if v, ok := f.Properties[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Names lists the non-empty feature names in collection order.
func (fc *FeatureCollection) Names() []string {
	if fc == nil {
		return nil
	}
	out := make([]string, 0, len(fc.Features))
	for _, f := range fc.Features {
		if n := f.Name(); n != "" {
			out = append(out, n)
		}
	}
	return out
}
