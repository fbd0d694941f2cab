package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/TerritoryScout/TS-Backend/internal/territory"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	state  = flag.String("state", "", "Two-letter state code (required)")
	county = flag.String("county", "", "County name")
	city   = flag.String("city", "", "City name")
	zip    = flag.String("zip", "", "5-digit ZIP")
)

func main() {
	godotenv.Load(".env.local")
	flag.Parse()

	if *state == "" {
		log.Fatal("--state is required")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}

	policy, err := territory.LoadPolicy(os.Getenv("TERRITORY_CONFIG"))
	if err != nil {
		log.Fatalf("Policy load error: %v", err)
	}

	checks, err := territory.LoadChecks(context.Background(), db, []string{*state})
	if err != nil {
		log.Fatalf("Check load error: %v", err)
	}

	ds := territory.NewDataset(checks)
	resolver := territory.NewResolver(ds, policy.Franchise.DefaultUnavailableStates)
	scope := territory.Scope{State: *state, County: *county, City: *city, Zip: *zip}
	if scope.Tier() == "" {
		log.Fatal("Scope is not strictly nested; a city needs its state, a ZIP needs its city")
	}

	fmt.Printf("Scope:   %s\n", scopeLabel(scope))
	fmt.Printf("Checks:  %d loaded for %s\n", ds.CheckCount(), *state)
	fmt.Printf("Default: %s\n", resolver.DefaultStatus(*state))
	fmt.Printf("Status:  %s\n", resolver.Resolve(scope))

	if b := resolver.FindBlanketCheck(scope); b != nil {
		fmt.Printf("Blanket: %q (%s)\n", b.RawLocation, b.Verdict)
	} else {
		fmt.Println("Blanket: none")
	}
}

func scopeLabel(s territory.Scope) string {
	label := s.State
	for _, part := range []string{s.County, s.City, s.Zip} {
		if part != "" {
			label += " / " + part
		}
	}
	return label
}
