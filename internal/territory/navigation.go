package territory

import (
	"sync"
	"sync/atomic"
)

// Breadcrumb is one clickable segment of the drill-down trail.
type Breadcrumb struct {
	Tier  Tier   `json:"tier"`
	Value string `json:"value"`
}

// Navigator tracks the broker's drill-down position. The selection tuple is
// strictly nested: selecting at one tier clears everything deeper, and the
// tuple is the single source of truth for breadcrumbs and for which geometry
// tier gets requested next.
//
// Every accepted transition bumps a generation number. Boundary fetches are
// tagged with the generation that issued them so a slow response for a view
// the broker already left can be recognized and thrown away.
//
// The HTTP layer shares one Navigator across requests; the mutex keeps the
// tuple consistent under concurrent selects and reads.
type Navigator struct {
	mu         sync.Mutex
	ds         *Dataset
	generation atomic.Uint64

	state  string
	county string
	city   string
	zip    string
}

func NewNavigator(ds *Dataset) *Navigator {
	return &Navigator{ds: ds}
}

// Generation returns the tag for the current view.
func (n *Navigator) Generation() uint64 { return n.generation.Load() }

// SetDataset swaps in a fresh snapshot. The selection survives a reload, but
// the generation bumps so geometry fetched for the old snapshot is discarded.
func (n *Navigator) SetDataset(ds *Dataset) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ds = ds
	n.generation.Add(1)
}

// Current returns the selection tuple as a scope.
func (n *Navigator) Current() Scope {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current()
}

func (n *Navigator) current() Scope {
	return Scope{State: n.state, County: n.county, City: n.city, Zip: n.zip}
}

// Select records a pick at the given tier, clearing all deeper selections.
// Picks whose parent tier is not selected are ignored: the UI cannot reach
// them, and a stale click must not corrupt the tuple. Selecting a state whose
// only county is the sentinel advances straight into that county, skipping a
// single-choice screen.
func (n *Navigator) Select(tier Tier, value string) (Scope, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch tier {
	case TierState:
		n.state = normState(value)
		n.county, n.city, n.zip = "", "", ""
		n.autoAdvance()
	case TierCounty:
		if n.state == "" {
			return n.current(), n.Generation()
		}
		n.county = value
		n.city, n.zip = "", ""
	case TierCity:
		if n.state == "" {
			return n.current(), n.Generation()
		}
		n.city = value
		n.zip = ""
	case TierZip:
		if n.city == "" {
			return n.current(), n.Generation()
		}
		n.zip = value
	default:
		return n.current(), n.Generation()
	}
	return n.current(), n.generation.Add(1)
}

// BreadcrumbClick returns to a previously selected tier, clearing everything
// deeper. Clicking a tier with no selection is a no-op.
func (n *Navigator) BreadcrumbClick(tier Tier) (Scope, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch tier {
	case TierState:
		if n.state == "" {
			return n.current(), n.Generation()
		}
		n.county, n.city, n.zip = "", "", ""
		n.autoAdvance()
	case TierCounty:
		if n.county == "" {
			return n.current(), n.Generation()
		}
		n.city, n.zip = "", ""
	case TierCity:
		if n.city == "" {
			return n.current(), n.Generation()
		}
		n.zip = ""
	case TierZip:
		return n.current(), n.Generation()
	default:
		return n.current(), n.Generation()
	}
	return n.current(), n.generation.Add(1)
}

// Reset clears the whole selection, returning to the national view.
func (n *Navigator) Reset() (Scope, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state, n.county, n.city, n.zip = "", "", "", ""
	return n.current(), n.generation.Add(1)
}

// autoAdvance skips the county screen for states whose only county is the
// sentinel; there is nothing to choose there. Caller holds the mutex.
func (n *Navigator) autoAdvance() {
	st := n.ds.State(n.state)
	if st == nil || len(st.Counties) != 1 {
		return
	}
	for _, co := range st.Counties {
		if co.Name == UnspecifiedCounty {
			n.county = UnspecifiedCounty
		}
	}
}

// Breadcrumbs derives the trail from the selection tuple.
func (n *Navigator) Breadcrumbs() []Breadcrumb {
	n.mu.Lock()
	defer n.mu.Unlock()
	var crumbs []Breadcrumb
	if n.state != "" {
		crumbs = append(crumbs, Breadcrumb{Tier: TierState, Value: n.state})
	}
	if n.county != "" {
		crumbs = append(crumbs, Breadcrumb{Tier: TierCounty, Value: n.county})
	}
	if n.city != "" {
		crumbs = append(crumbs, Breadcrumb{Tier: TierCity, Value: n.city})
	}
	if n.zip != "" {
		crumbs = append(crumbs, Breadcrumb{Tier: TierZip, Value: n.zip})
	}
	return crumbs
}

// NextTier reports which geometry tier the current view needs.
func (n *Navigator) NextTier() Tier {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch {
	case n.state == "":
		return TierState
	case n.county == "":
		return TierCounty
	case n.city == "":
		return TierCity
	default:
		return TierZip
	}
}

// Terminal reports whether the view has drilled down to an individual-check
// list (a single ZIP), with nowhere deeper to go.
func (n *Navigator) Terminal() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.zip != ""
}
