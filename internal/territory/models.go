package territory

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the resolved availability verdict for a scope.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusMixed       Status = "mixed"
	// StatusNeutral is a defensive fallback for scopes the resolver cannot
	// place in the hierarchy. Normal data never produces it.
	StatusNeutral Status = "neutral"
)

// VerdictAvailable is the one check verdict that counts as available.
// Every other verdict string ("Not Available", "Sold", legacy junk) counts
// as not available.
const VerdictAvailable = "Available"

// Sentinel names for checks with no finer geography. A check filed under both
// sentinels is a state-level blanket; under the sentinel city alone, a
// county-level blanket.
const (
	UnspecifiedCounty = "Unspecified County"
	UnspecifiedArea   = "Unspecified Area"
)

// Tier identifies one level of the state → county → city → ZIP hierarchy.
type Tier string

const (
	TierState  Tier = "state"
	TierCounty Tier = "county"
	TierCity   Tier = "city"
	TierZip    Tier = "zip"
)

// Coordinate is an optional point attached to a check, used for point-marker
// rendering when polygon geometry is missing.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Check is one recorded availability observation for a location.
type Check struct {
	ID              uuid.UUID   `json:"id"`
	RawLocation     string      `json:"raw_location"`
	State           string      `json:"state"`
	County          string      `json:"county,omitempty"`
	City            string      `json:"city,omitempty"`
	Zip             string      `json:"zip,omitempty"`
	Coordinate      *Coordinate `json:"coordinate,omitempty"`
	Verdict         string      `json:"verdict"`
	ServiceRadiusMi *float64    `json:"service_radius_mi,omitempty"`
	CheckedAt       time.Time   `json:"checked_at,omitempty"`
}

// Available reports whether this check's verdict counts as available.
func (c Check) Available() bool { return c.Verdict == VerdictAvailable }

// Blanket reports whether this check is a blanket check for the tier it is
// attached to, i.e. it carries no ZIP of its own.
func (c Check) Blanket() bool { return c.Zip == "" }

// Scope identifies the region being queried: a state, optionally narrowed by
// county, city and ZIP. Fields are strictly nested; a set field with an unset
// parent makes the scope unresolvable.
type Scope struct {
	State  string `json:"state"`
	County string `json:"county,omitempty"`
	City   string `json:"city,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// Tier returns the deepest populated level of the scope, or "" if the scope is
// not strictly nested (e.g. a ZIP with no city).
func (s Scope) Tier() Tier {
	switch {
	case s.Zip != "":
		if s.City == "" || s.State == "" {
			return ""
		}
		return TierZip
	case s.City != "":
		if s.State == "" {
			return ""
		}
		return TierCity
	case s.County != "":
		if s.State == "" {
			return ""
		}
		return TierCounty
	case s.State != "":
		return TierState
	default:
		return ""
	}
}

// normState canonicalizes a state code for use as a dataset key.
func normState(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
