package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/TerritoryScout/TS-Backend/internal/geo/provider"
	"github.com/TerritoryScout/TS-Backend/internal/metrics"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoundaryCache is the durable geometry cache row. Geometry is immutable
// reference data, so rows never expire; invalidation is by key only (e.g.
// after a Census vintage bump).
type BoundaryCache struct {
	CacheKey  string    `gorm:"primaryKey"`
	Tier      string    `gorm:"index"`
	ParentKey string    `gorm:"index"`
	Payload   []byte
	FetchedAt time.Time
}

func (BoundaryCache) TableName() string { return "geo.boundary_caches" }

// CachedProvider layers three caches in front of any BoundaryProvider:
// an in-process map, a shared Redis tier with TTL, and the Postgres table.
// Redis and Postgres are both optional; a nil client simply skips that tier.
type CachedProvider struct {
	inner provider.BoundaryProvider
	rdb   *redis.Client
	db    *gorm.DB
	ttl   time.Duration

	mu  sync.RWMutex
	mem map[string]*provider.FeatureCollection
}

func NewCachedProvider(inner provider.BoundaryProvider, rdb *redis.Client, db *gorm.DB, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedProvider{
		inner: inner,
		rdb:   rdb,
		db:    db,
		ttl:   ttl,
		mem:   make(map[string]*provider.FeatureCollection),
	}
}

func cacheKey(tier, parentKey string) string {
	if parentKey == "" {
		return tier
	}
	return tier + ":" + parentKey
}

func (p *CachedProvider) Name() string { return "cached:" + p.inner.Name() }

func (p *CachedProvider) FetchBoundaries(ctx context.Context, tier, parentKey string) (*provider.FeatureCollection, error) {
	key := cacheKey(tier, parentKey)

	p.mu.RLock()
	fc, ok := p.mem[key]
	p.mu.RUnlock()
	if ok {
		metrics.BoundaryCacheHitsTotal.WithLabelValues("memory").Inc()
		return fc, nil
	}

	if p.rdb != nil {
		raw, err := p.rdb.Get(ctx, "boundary:"+key).Bytes()
		if err == nil {
			var cached provider.FeatureCollection
			if json.Unmarshal(raw, &cached) == nil {
				metrics.BoundaryCacheHitsTotal.WithLabelValues("redis").Inc()
				p.remember(key, &cached)
				return &cached, nil
			}
		}
	}

	if p.db != nil {
		var row BoundaryCache
		err := p.db.WithContext(ctx).First(&row, "cache_key = ?", key).Error
		if err == nil {
			var cached provider.FeatureCollection
			if json.Unmarshal(row.Payload, &cached) == nil {
				metrics.BoundaryCacheHitsTotal.WithLabelValues("postgres").Inc()
				p.remember(key, &cached)
				p.backfillRedis(ctx, key, row.Payload)
				return &cached, nil
			}
		}
	}

	metrics.BoundaryCacheMissesTotal.Inc()

	start := time.Now()
	fresh, err := p.inner.FetchBoundaries(ctx, tier, parentKey)
	metrics.BoundaryFetchDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, err
	}
	metrics.BoundaryFetchesTotal.WithLabelValues(tier).Inc()

	p.remember(key, fresh)
	if raw, err := json.Marshal(fresh); err == nil {
		p.backfillRedis(ctx, key, raw)
		if p.db != nil {
			row := BoundaryCache{
				CacheKey:  key,
				Tier:      tier,
				ParentKey: parentKey,
				Payload:   raw,
				FetchedAt: time.Now(),
			}
			_ = p.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
		}
	}
	return fresh, nil
}

func (p *CachedProvider) remember(key string, fc *provider.FeatureCollection) {
	p.mu.Lock()
	p.mem[key] = fc
	p.mu.Unlock()
}

func (p *CachedProvider) backfillRedis(ctx context.Context, key string, raw []byte) {
	if p.rdb == nil {
		return
	}
	_ = p.rdb.Set(ctx, "boundary:"+key, raw, p.ttl).Err()
}

// Invalidate drops one key from every cache tier.
func (p *CachedProvider) Invalidate(ctx context.Context, tier, parentKey string) error {
	key := cacheKey(tier, parentKey)
	p.mu.Lock()
	delete(p.mem, key)
	p.mu.Unlock()
	if p.rdb != nil {
		_ = p.rdb.Del(ctx, "boundary:"+key).Err()
	}
	if p.db != nil {
		if err := p.db.WithContext(ctx).Delete(&BoundaryCache{}, "cache_key = ?", key).Error; err != nil {
			return fmt.Errorf("invalidating boundary cache %s: %w", key, err)
		}
	}
	return nil
}

func (p *CachedProvider) HealthCheck(ctx context.Context) error {
	return p.inner.HealthCheck(ctx)
}
