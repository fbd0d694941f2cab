package territory

// Resolver answers "what is the availability status of this region" for any
// scope in the hierarchy. It is a pure view over an immutable dataset snapshot
// and the franchise's default-unavailable state list; calling it repeatedly
// for the same scope is free of side effects.
//
// Resolution is bottom-up (ZIPs aggregate into cities, cities into counties)
// with one top-down override: a blanket check at any tier beats the aggregate
// of everything beneath it, and the franchise default fills in wherever no
// evidence exists at all.
type Resolver struct {
	ds                 *Dataset
	defaultUnavailable map[string]struct{}
}

func NewResolver(ds *Dataset, defaultUnavailableStates []string) *Resolver {
	set := make(map[string]struct{}, len(defaultUnavailableStates))
	for _, s := range defaultUnavailableStates {
		set[normState(s)] = struct{}{}
	}
	return &Resolver{ds: ds, defaultUnavailable: set}
}

// Dataset exposes the snapshot this resolver reads from.
func (r *Resolver) Dataset() *Dataset { return r.ds }

// DefaultUnavailable reports whether the state's umbrella policy is
// "closed unless proven otherwise".
func (r *Resolver) DefaultUnavailable(state string) bool {
	_, ok := r.defaultUnavailable[normState(state)]
	return ok
}

// DefaultStatus is the status a region inherits when it has no check data:
// the state's umbrella policy, not "unknown".
func (r *Resolver) DefaultStatus(state string) Status {
	if r.DefaultUnavailable(state) {
		return StatusUnavailable
	}
	return StatusAvailable
}

// Resolve computes the status for a scope. Unrecognizable scopes (broken
// nesting, empty tuple) get the neutral fallback rather than an error.
func (r *Resolver) Resolve(s Scope) Status {
	switch s.Tier() {
	case TierZip:
		return r.resolveZip(s.State, s.County, s.City, s.Zip)
	case TierCity:
		return r.resolveCity(s.State, s.County, s.City)
	case TierCounty:
		return r.resolveCounty(s.State, s.County)
	case TierState:
		return r.resolveState(s.State)
	default:
		return StatusNeutral
	}
}

func checkStatus(c *Check) Status {
	if c.Available() {
		return StatusAvailable
	}
	return StatusUnavailable
}

// combine folds child statuses: unanimity carries through, any disagreement
// (or an already-mixed child) is mixed. An empty slice is available — absence
// of evidence at the leaves is not evidence of unavailability.
func combine(statuses []Status) Status {
	sawAvailable, sawUnavailable := false, false
	for _, st := range statuses {
		switch st {
		case StatusAvailable:
			sawAvailable = true
		case StatusUnavailable:
			sawUnavailable = true
		case StatusMixed:
			return StatusMixed
		}
	}
	if sawAvailable && sawUnavailable {
		return StatusMixed
	}
	if sawUnavailable {
		return StatusUnavailable
	}
	return StatusAvailable
}

// resolveZip resolves one ZIP within a city. The city's blanket check, when
// present, dominates every ZIP beneath it. A city with no node at all inherits
// the state default; a ZIP merely absent from an existing node falls to the
// empty-list rule and reads available, since the city around it has been
// checked and nothing marked this ZIP off.
func (r *Resolver) resolveZip(state, county, city, zip string) Status {
	node := r.ds.City(state, county, city)
	if node == nil {
		return r.DefaultStatus(state)
	}
	if b := node.blanket(); b != nil {
		return checkStatus(b)
	}
	var statuses []Status
	for _, c := range node.Checks {
		if c.Zip == zip {
			statuses = append(statuses, checkStatus(&c))
		}
	}
	return combine(statuses)
}

func (r *Resolver) resolveCityNode(state string, node *CityNode) Status {
	if node == nil || len(node.Checks) == 0 {
		return r.DefaultStatus(state)
	}
	if b := node.blanket(); b != nil {
		return checkStatus(b)
	}
	groups := node.zipGroups()
	statuses := make([]Status, 0, len(groups))
	for _, checks := range groups {
		var zs []Status
		for i := range checks {
			zs = append(zs, checkStatus(&checks[i]))
		}
		statuses = append(statuses, combine(zs))
	}
	if len(statuses) == 0 {
		return r.DefaultStatus(state)
	}
	return combine(statuses)
}

func (r *Resolver) resolveCity(state, county, city string) Status {
	return r.resolveCityNode(state, r.ds.City(state, county, city))
}

// resolveCounty mirrors the city rule one level up: a county blanket (a no-ZIP
// check under the sentinel city) wins outright, otherwise child cities
// aggregate, otherwise the state default applies.
func (r *Resolver) resolveCounty(state, county string) Status {
	co := r.ds.County(state, county)
	if co == nil {
		return r.DefaultStatus(state)
	}
	if sentinel := co.Cities[foldName(UnspecifiedArea)]; sentinel != nil {
		if b := sentinel.blanket(); b != nil {
			return checkStatus(b)
		}
	}
	var statuses []Status
	for _, city := range co.Cities {
		if len(city.Checks) == 0 {
			continue
		}
		statuses = append(statuses, r.resolveCityNode(state, city))
	}
	if len(statuses) == 0 {
		return r.DefaultStatus(state)
	}
	return combine(statuses)
}

// resolveState is not a pure aggregate of children; it is an override of the
// default policy. Specific contrary evidence under a state surfaces as mixed
// rather than silently flipping the umbrella verdict. A state blanket check
// short-circuits the scan: an Available blanket is an explicit carve-out and
// wins even against a default-unavailable listing, while a not-available
// blanket contradicting a default-available listing reads as mixed. The two
// directions are deliberately not symmetric.
func (r *Resolver) resolveState(state string) Status {
	if b := r.stateBlanket(state); b != nil {
		if b.Available() {
			return StatusAvailable
		}
		if r.DefaultUnavailable(state) {
			return StatusUnavailable
		}
		return StatusMixed
	}

	anyAvailable, anyUnavailable := false, false
	for _, c := range r.ds.StateChecks(state) {
		if c.Available() {
			anyAvailable = true
		} else {
			anyUnavailable = true
		}
		if anyAvailable && anyUnavailable {
			break
		}
	}
	if r.DefaultUnavailable(state) {
		if anyAvailable {
			return StatusMixed
		}
		return StatusUnavailable
	}
	if anyUnavailable {
		return StatusMixed
	}
	return StatusAvailable
}

func (r *Resolver) stateBlanket(state string) *Check {
	return r.ds.City(state, UnspecifiedCounty, UnspecifiedArea).blanket()
}
