package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// CLI flags
var (
	dir    = flag.String("dir", "", "Directory of GeoJSON files to import (required)")
	dsn    = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun = flag.Bool("dry-run", false, "Parse + validate only; no DB writes")
)

// File contract: <tier>.geojson for national layers, <tier>_<PARENT>.geojson
// for per-state layers, e.g. state.geojson, county_TX.geojson, city_CA.geojson.
// Each file is a GeoJSON FeatureCollection stored verbatim as the cache payload.

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *dir == "" {
		fatalf("--dir is required")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		fatalf("reading %s: %v", *dir, err)
	}

	type boundaryFile struct {
		path   string
		tier   string
		parent string
	}
	var files []boundaryFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".geojson") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".geojson")
		tier, parent := base, ""
		if i := strings.IndexByte(base, '_'); i >= 0 {
			tier, parent = base[:i], strings.ToUpper(base[i+1:])
		}
		switch tier {
		case "state", "county", "city", "zip":
		default:
			fmt.Printf("skip %s: unknown tier %q\n", e.Name(), tier)
			continue
		}
		files = append(files, boundaryFile{
			path:   filepath.Join(*dir, e.Name()),
			tier:   tier,
			parent: parent,
		})
	}
	if len(files) == 0 {
		fatalf("no .geojson files found in %s", *dir)
	}

	if *dryRun {
		for _, f := range files {
			fmt.Printf("would import %s -> %s/%s\n", f.path, f.tier, f.parent)
		}
		return
	}

	dbc, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("opening database: %v", err)
	}
	defer dbc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	const upsert = `
		INSERT INTO geo.boundary_caches (cache_key, tier, parent_key, payload, fetched_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (cache_key) DO UPDATE
		SET tier = EXCLUDED.tier,
		    parent_key = EXCLUDED.parent_key,
		    payload = EXCLUDED.payload,
		    fetched_at = EXCLUDED.fetched_at`

	imported := 0
	for _, f := range files {
		payload, err := os.ReadFile(f.path)
		if err != nil {
			fatalf("reading %s: %v", f.path, err)
		}
		key := f.tier
		if f.parent != "" {
			key = f.tier + ":" + f.parent
		}
		if _, err := dbc.ExecContext(ctx, upsert, key, f.tier, f.parent, payload); err != nil {
			fatalf("upserting %s: %v", key, err)
		}
		fmt.Printf("✓ %s (%d bytes)\n", key, len(payload))
		imported++
	}
	fmt.Printf("Imported %d boundary layers\n", imported)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "import-boundaries: "+format+"\n", args...)
	os.Exit(1)
}
