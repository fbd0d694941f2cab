package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/TerritoryScout/TS-Backend/internal/db"
	"github.com/TerritoryScout/TS-Backend/internal/geo"
	"github.com/TerritoryScout/TS-Backend/internal/geo/provider"
	"github.com/TerritoryScout/TS-Backend/internal/utils"
	"github.com/joho/godotenv"
)

var (
	states  = flag.String("states", "", "Comma-separated state codes to warm county/city layers for (default: states only)")
	ttl     = flag.Duration("ttl", time.Hour, "Redis TTL for warmed entries")
	timeout = flag.Duration("timeout", 30*time.Second, "Per-fetch timeout")
)

// Warms the boundary cache chain so the first broker session of the day does
// not eat the TIGERweb latency. State outlines always; county and city layers
// for the states named with --states.
func main() {
	godotenv.Load(".env.local")
	flag.Parse()

	db.Connect()
	geo.Init()

	cfg := provider.LoadFromEnv()
	inner, err := provider.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Boundary provider error: %v", err)
	}
	cached := geo.NewCachedProvider(inner, utils.OpenRedisFromEnv(), db.DB, *ttl)

	warm := func(tier, parent string) {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		fc, err := cached.FetchBoundaries(ctx, tier, parent)
		if err != nil {
			log.Printf("✗ %s/%s: %v", tier, parent, err)
			return
		}
		fmt.Printf("✓ %s/%s: %d features\n", tier, parent, len(fc.Features))
	}

	warm("state", "")
	if *states != "" {
		for _, st := range strings.Split(*states, ",") {
			st = strings.ToUpper(strings.TrimSpace(st))
			if st == "" {
				continue
			}
			warm("county", st)
			warm("city", st)
		}
	}
}
