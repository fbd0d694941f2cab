package territory

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/TerritoryScout/TS-Backend/internal/db"
	"github.com/TerritoryScout/TS-Backend/internal/geo"
	"github.com/TerritoryScout/TS-Backend/internal/geo/provider"
	"github.com/TerritoryScout/TS-Backend/internal/metrics"
	"github.com/TerritoryScout/TS-Backend/internal/utils"
)

// ActivePolicy is the franchise policy the service resolved against,
// initialized in Init().
var ActivePolicy *Policy

// Boundaries is the active (cached) boundary provider, or nil when geometry
// is unavailable; handlers degrade to point rendering in that case.
var Boundaries provider.BoundaryProvider

// Nav is the server-side navigator shared with the map frontend.
var Nav *Navigator

var (
	currentResolver atomic.Pointer[Resolver]
	snapshotMeta    atomic.Pointer[SnapshotMeta]
)

// SnapshotMeta describes the current in-memory check snapshot.
type SnapshotMeta struct {
	Checks   int       `json:"checks"`
	States   int       `json:"states"`
	LoadedAt time.Time `json:"loaded_at"`
}

// CurrentResolver returns the resolver over the current immutable snapshot.
// Handlers grab it once per request; a concurrent reload swaps the pointer
// without disturbing in-flight resolutions.
func CurrentResolver() *Resolver { return currentResolver.Load() }

// CurrentSnapshotMeta returns metadata about the loaded snapshot.
func CurrentSnapshotMeta() *SnapshotMeta { return snapshotMeta.Load() }

func Init() {
	var err error
	ActivePolicy, err = LoadPolicy(os.Getenv("TERRITORY_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load territory policy: ", err)
	}
	if n := len(ActivePolicy.Franchise.DefaultUnavailableStates); n > 0 {
		log.Printf("[territory] %d default-unavailable states in policy", n)
	}

	cfg := provider.LoadFromEnv()
	if os.Getenv("BOUNDARY_PROVIDER") == "" && ActivePolicy.Boundaries.Provider != "" {
		cfg.Provider = provider.ProviderType(ActivePolicy.Boundaries.Provider)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = ActivePolicy.Boundaries.DataDir
	}
	inner, err := provider.NewProvider(cfg)
	if err != nil {
		log.Printf("[territory] WARNING: Failed to initialize %s boundary provider: %v", cfg.Provider, err)
		log.Printf("[territory] Map views will fall back to point markers")
		Boundaries = nil
	} else {
		ttl := time.Duration(ActivePolicy.Boundaries.CacheTTLMinutes) * time.Minute
		Boundaries = geo.NewCachedProvider(inner, utils.OpenRedisFromEnv(), db.DB, ttl)
		log.Printf("[territory] Initialized %s boundary provider", Boundaries.Name())
	}

	if err := ReloadSnapshot(context.Background()); err != nil {
		log.Fatal("Failed to load initial check snapshot: ", err)
	}
	Nav = NewNavigator(CurrentResolver().Dataset())
}

// ReloadSnapshot re-reads checks from the backend of record and swaps in a
// fresh immutable snapshot. Called at startup, from the reload endpoint, and
// from the check-change webhook.
func ReloadSnapshot(ctx context.Context) error {
	checks, err := LoadChecks(ctx, db.DB, nil)
	if err != nil {
		return fmt.Errorf("reloading checks: %w", err)
	}
	ds := NewDataset(checks)
	currentResolver.Store(NewResolver(ds, ActivePolicy.Franchise.DefaultUnavailableStates))
	snapshotMeta.Store(&SnapshotMeta{
		Checks:   ds.CheckCount(),
		States:   len(ds.States),
		LoadedAt: time.Now(),
	})
	if Nav != nil {
		Nav.SetDataset(ds)
	}
	metrics.SnapshotReloadsTotal.Inc()
	metrics.SnapshotChecks.Set(float64(ds.CheckCount()))
	log.Printf("[territory] Snapshot loaded: %d checks across %d states", ds.CheckCount(), len(ds.States))
	return nil
}
