package territory

import "sort"

type childEntry struct {
	name     string
	fold     string
	count    int
	sentinel bool
}

// ListChildren returns the child regions visible one tier below a scope,
// merging regions that have check data with externally supplied geometry
// names. Ordering: regions with check data first, by descending check count
// (ties alphabetical), then geometry-only regions alphabetically, with the
// unspecified sentinels always last. Geometry names are matched
// case-insensitively with Census place-type suffixes stripped, so a dataset
// "Travis" absorbs a geometry "Travis County" instead of appearing twice.
func (r *Resolver) ListChildren(tier Tier, scope Scope, geometryNames []string) []string {
	// The same city name can appear under two counties of one state; collapse
	// duplicates by fold key, summing counts.
	var entries []childEntry
	byFold := make(map[string]int)
	for _, e := range r.datasetChildren(tier, scope) {
		if i, ok := byFold[e.fold]; ok {
			entries[i].count += e.count
			continue
		}
		byFold[e.fold] = len(entries)
		entries = append(entries, e)
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.fold] = struct{}{}
	}

	var geomOnly []string
	for _, name := range geometryNames {
		if tier == TierCity && numericOnly(name) {
			continue
		}
		// Census state layers say "Texas"; check data says "TX". Fold both
		// through the USPS table so the two sides join.
		f := foldName(name)
		if tier == TierState {
			f = foldStateName(name)
		}
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		geomOnly = append(geomOnly, name)
	}

	var data, sentinels []childEntry
	for _, e := range entries {
		if e.sentinel {
			sentinels = append(sentinels, e)
		} else {
			data = append(data, e)
		}
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].count != data[j].count {
			return data[i].count > data[j].count
		}
		return data[i].name < data[j].name
	})
	sort.Strings(geomOnly)
	sort.Slice(sentinels, func(i, j int) bool { return sentinels[i].name < sentinels[j].name })

	out := make([]string, 0, len(data)+len(geomOnly)+len(sentinels))
	for _, e := range data {
		out = append(out, e.name)
	}
	out = append(out, geomOnly...)
	for _, e := range sentinels {
		out = append(out, e.name)
	}
	return out
}

func (r *Resolver) datasetChildren(tier Tier, scope Scope) []childEntry {
	var entries []childEntry
	switch tier {
	case TierState:
		for code, st := range r.ds.States {
			n := 0
			for _, co := range st.Counties {
				for _, ci := range co.Cities {
					n += len(ci.Checks)
				}
			}
			entries = append(entries, childEntry{name: code, fold: foldStateName(code), count: n})
		}
	case TierCounty:
		st := r.ds.State(scope.State)
		if st == nil {
			return nil
		}
		for fold, co := range st.Counties {
			n := 0
			for _, ci := range co.Cities {
				n += len(ci.Checks)
			}
			entries = append(entries, childEntry{
				name:     displayName(co.Name),
				fold:     fold,
				count:    n,
				sentinel: co.Name == UnspecifiedCounty,
			})
		}
	case TierCity:
		st := r.ds.State(scope.State)
		if st == nil {
			return nil
		}
		addCities := func(co *CountyNode) {
			for fold, ci := range co.Cities {
				if numericOnly(ci.Name) {
					continue
				}
				entries = append(entries, childEntry{
					name:     displayName(ci.Name),
					fold:     fold,
					count:    len(ci.Checks),
					sentinel: ci.Name == UnspecifiedArea,
				})
			}
		}
		if scope.County != "" {
			if co := r.ds.County(scope.State, scope.County); co != nil {
				addCities(co)
			}
		} else {
			for _, co := range st.Counties {
				addCities(co)
			}
		}
	case TierZip:
		node := r.ds.City(scope.State, scope.County, scope.City)
		if node == nil {
			return nil
		}
		for zip, checks := range node.zipGroups() {
			entries = append(entries, childEntry{name: zip, fold: zip, count: len(checks)})
		}
	}
	return entries
}
