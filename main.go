package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/TerritoryScout/TS-Backend/internal/db"
	"github.com/TerritoryScout/TS-Backend/internal/geo"
	"github.com/TerritoryScout/TS-Backend/internal/metrics"
	"github.com/TerritoryScout/TS-Backend/internal/middleware"
	"github.com/TerritoryScout/TS-Backend/internal/territory"
	"github.com/TerritoryScout/TS-Backend/internal/webhooks"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	geo.Init()
	territory.Init()
	webhooks.Reload = territory.ReloadSnapshot

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.AccessLogMiddleware(slog.New(slog.NewTextHandler(os.Stdout, nil))))
	r.Get("/", RootHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Mount("/territory", territory.SetupRoutes())
	r.Mount("/webhooks", webhooks.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
