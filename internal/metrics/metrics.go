package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "territory_resolutions_total",
		Help: "Total availability resolutions, by resulting status",
	}, []string{"status"})
	ResolutionDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "territory_resolution_duration_ms",
		Help:    "Availability resolution duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 20, 50, 100},
	})
	SnapshotReloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "territory_snapshot_reloads_total",
		Help: "Total check-snapshot reloads from the backend of record",
	})
	SnapshotChecks = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "territory_snapshot_checks",
		Help: "Number of checks in the current snapshot",
	})
	BoundaryFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "territory_boundary_fetches_total",
		Help: "Total upstream boundary fetches, by tier",
	}, []string{"tier"})
	BoundaryFetchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "territory_boundary_fetch_duration_ms",
		Help:    "Upstream boundary fetch duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000},
	})
	BoundaryCacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "territory_boundary_cache_hits_total",
		Help: "Boundary cache hits, by cache tier (memory, redis, postgres)",
	}, []string{"cache"})
	BoundaryCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "territory_boundary_cache_misses_total",
		Help: "Boundary requests that fell through every cache tier",
	})
	StaleFetchDiscardsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "territory_stale_fetch_discards_total",
		Help: "Boundary fetch results discarded because navigation moved on",
	})
	WebhookEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "territory_webhook_events_total",
		Help: "Check-change webhook deliveries, by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		ResolutionsTotal,
		ResolutionDurationMs,
		SnapshotReloadsTotal,
		SnapshotChecks,
		BoundaryFetchesTotal,
		BoundaryFetchDurationMs,
		BoundaryCacheHitsTotal,
		BoundaryCacheMissesTotal,
		StaleFetchDiscardsTotal,
		WebhookEventsTotal,
	)
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
