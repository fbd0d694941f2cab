package geo

import (
	"log"

	"github.com/TerritoryScout/TS-Backend/internal/db"

	// Import providers to register them via init()
	_ "github.com/TerritoryScout/TS-Backend/internal/geo/static"
	_ "github.com/TerritoryScout/TS-Backend/internal/geo/tigerweb"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "geo"); err != nil {
		log.Fatal("Failed to ensure schema geo: ", err)
	}

	if err := db.DB.AutoMigrate(&BoundaryCache{}); err != nil {
		log.Fatal("Failed to auto-migrate boundary cache", err)
	}
}
