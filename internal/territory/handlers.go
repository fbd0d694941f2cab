package territory

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/TerritoryScout/TS-Backend/internal/geo"
	"github.com/TerritoryScout/TS-Backend/internal/geo/provider"
	"github.com/TerritoryScout/TS-Backend/internal/metrics"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func scopeFromQuery(r *http.Request) Scope {
	q := r.URL.Query()
	return Scope{
		State:  q.Get("state"),
		County: q.Get("county"),
		City:   q.Get("city"),
		Zip:    q.Get("zip"),
	}
}

type statusResponse struct {
	Scope         Scope  `json:"scope"`
	Status        Status `json:"status"`
	DefaultStatus Status `json:"default_status"`
	Blanket       *Check `json:"blanket,omitempty"`
}

// GetStatus handles GET /territory/status?state=TX&county=&city=&zip=
func GetStatus(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromQuery(r)
	if scope.Tier() == "" {
		http.Error(w, "scope must name at least a state, with strictly nested narrowing", http.StatusBadRequest)
		return
	}
	resolver := CurrentResolver()

	start := time.Now()
	status := resolver.Resolve(scope)
	metrics.ResolutionDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.ResolutionsTotal.WithLabelValues(string(status)).Inc()

	writeJSON(w, statusResponse{
		Scope:         scope,
		Status:        status,
		DefaultStatus: resolver.DefaultStatus(scope.State),
		Blanket:       resolver.FindBlanketCheck(scope),
	})
}

// GetBlanket handles GET /territory/blanket. 404 means the scope is governed
// by inherited defaults and ZIP evidence only; the UI skips the banner then.
func GetBlanket(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromQuery(r)
	if scope.Tier() == "" {
		http.Error(w, "scope must name at least a state", http.StatusBadRequest)
		return
	}
	blanket := CurrentResolver().FindBlanketCheck(scope)
	if blanket == nil {
		http.Error(w, "no blanket check governs this scope", http.StatusNotFound)
		return
	}
	writeJSON(w, blanket)
}

// GetChildren handles GET /territory/children?tier=county&state=TX. The list
// merges dataset regions with geometry names; a geometry failure degrades to
// dataset-only rather than erroring.
func GetChildren(w http.ResponseWriter, r *http.Request) {
	tier := Tier(r.URL.Query().Get("tier"))
	switch tier {
	case TierState, TierCounty, TierCity, TierZip:
	default:
		http.Error(w, "tier must be one of state, county, city, zip", http.StatusBadRequest)
		return
	}
	scope := scopeFromQuery(r)
	if tier != TierState && scope.State == "" {
		http.Error(w, "state is required below the state tier", http.StatusBadRequest)
		return
	}

	var geometryNames []string
	if Boundaries != nil {
		parent := scope.State
		if tier == TierState {
			parent = ""
		}
		fc, err := Boundaries.FetchBoundaries(r.Context(), string(tier), parent)
		if err != nil {
			log.Printf("[territory] boundary fetch for children failed (tier=%s): %v", tier, err)
		} else {
			geometryNames = fc.Names()
		}
	}

	writeJSON(w, map[string]any{
		"tier":     tier,
		"scope":    scope,
		"children": CurrentResolver().ListChildren(tier, scope, geometryNames),
	})
}

// GetBoundaries handles GET /territory/boundaries?tier=county&parent=TX.
// An optional generation parameter tags the fetch; if navigation moves on
// before the upstream answers, the response is 409 and the client drops it.
func GetBoundaries(w http.ResponseWriter, r *http.Request) {
	tier := r.URL.Query().Get("tier")
	parent := r.URL.Query().Get("parent")
	if Boundaries == nil {
		writeJSON(w, provider.Empty())
		return
	}

	issued := Nav.Generation()
	if g := r.URL.Query().Get("generation"); g != "" {
		if parsed, err := strconv.ParseUint(g, 10, 64); err == nil {
			issued = parsed
		}
	}

	fetcher := &geo.Fetcher{Provider: Boundaries, Source: Nav}
	fc, err := fetcher.Fetch(r.Context(), issued, tier, parent)
	if err == geo.ErrStale {
		http.Error(w, "navigation moved on; discard this fetch", http.StatusConflict)
		return
	}
	if err != nil {
		log.Printf("[territory] boundary fetch failed (tier=%s parent=%s): %v", tier, parent, err)
		// Degrade to point rendering rather than surfacing a map error.
		writeJSON(w, provider.Empty())
		return
	}
	writeJSON(w, fc)
}

// GetMap handles GET /territory/map: the full render registry for the current
// navigation view, rebuilt from scratch on every call.
func GetMap(w http.ResponseWriter, r *http.Request) {
	resolver := CurrentResolver()
	scope := Nav.Current()
	tier := Nav.NextTier()

	var fc *provider.FeatureCollection
	if Boundaries != nil {
		parent := scope.State
		if tier == TierState {
			parent = ""
		}
		fetched, err := Boundaries.FetchBoundaries(r.Context(), string(tier), parent)
		if err != nil {
			log.Printf("[territory] boundary fetch for map failed (tier=%s): %v", tier, err)
		} else {
			fc = fetched
		}
	}

	writeJSON(w, map[string]any{
		"scope":      scope,
		"tier":       tier,
		"generation": Nav.Generation(),
		"regions":    resolver.BuildRegistry(tier, scope, fc),
	})
}

type navRequest struct {
	Tier  Tier   `json:"tier"`
	Value string `json:"value"`
}

type navResponse struct {
	Scope       Scope        `json:"scope"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
	NextTier    Tier         `json:"next_tier"`
	Generation  uint64       `json:"generation"`
	Terminal    bool         `json:"terminal"`
}

func currentNav() navResponse {
	return navResponse{
		Scope:       Nav.Current(),
		Breadcrumbs: Nav.Breadcrumbs(),
		NextTier:    Nav.NextTier(),
		Generation:  Nav.Generation(),
		Terminal:    Nav.Terminal(),
	}
}

// GetNav handles GET /territory/nav.
func GetNav(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, currentNav())
}

// NavSelect handles POST /territory/nav/select with {"tier": "...", "value": "..."}.
func NavSelect(w http.ResponseWriter, r *http.Request) {
	var req navRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	Nav.Select(req.Tier, req.Value)
	writeJSON(w, currentNav())
}

// NavBreadcrumb handles POST /territory/nav/breadcrumb with {"tier": "..."}.
func NavBreadcrumb(w http.ResponseWriter, r *http.Request) {
	var req navRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	Nav.BreadcrumbClick(req.Tier)
	writeJSON(w, currentNav())
}

// NavReset handles POST /territory/nav/reset, returning to the national view.
func NavReset(w http.ResponseWriter, r *http.Request) {
	Nav.Reset()
	writeJSON(w, currentNav())
}

// PostReload handles POST /territory/reload.
func PostReload(w http.ResponseWriter, r *http.Request) {
	if err := ReloadSnapshot(r.Context()); err != nil {
		log.Printf("[territory] snapshot reload failed: %v", err)
		http.Error(w, "snapshot reload failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, CurrentSnapshotMeta())
}

// GetSnapshotStatus handles GET /territory/snapshot/status.
func GetSnapshotStatus(w http.ResponseWriter, r *http.Request) {
	meta := CurrentSnapshotMeta()
	if meta == nil {
		http.Error(w, "no snapshot loaded", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, meta)
}
