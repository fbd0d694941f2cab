package territory

// FindBlanketCheck returns the most specific explicit blanket check governing
// a scope, searching city → county → state, or nil when the scope is governed
// purely by inherited defaults and ZIP-level evidence. The UI renders this as
// the "this entire region is X" banner, distinct from the aggregated status.
func (r *Resolver) FindBlanketCheck(s Scope) *Check {
	if s.State == "" {
		return nil
	}

	if s.City != "" {
		if b := r.ds.City(s.State, s.County, s.City).blanket(); b != nil {
			return b
		}
	}

	if s.County != "" || s.City != "" {
		county := s.County
		if county == "" {
			// Collapsed-form datasets file city checks under the sentinel
			// county, so that is where a governing county blanket would live.
			county = UnspecifiedCounty
		}
		if co := r.ds.County(s.State, county); co != nil {
			if sentinel := co.Cities[foldName(UnspecifiedArea)]; sentinel != nil {
				if b := sentinel.blanket(); b != nil {
					return b
				}
			}
		}
	}

	return r.stateBlanket(s.State)
}
