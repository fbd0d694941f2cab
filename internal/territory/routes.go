package territory

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Resolution + lookup
	r.Get("/status", GetStatus)
	r.Get("/blanket", GetBlanket)
	r.Get("/children", GetChildren)

	// Geometry + render registry
	r.Get("/boundaries", GetBoundaries)
	r.Get("/map", GetMap)

	// Navigation
	r.Get("/nav", GetNav)
	r.Post("/nav/select", NavSelect)
	r.Post("/nav/breadcrumb", NavBreadcrumb)
	r.Post("/nav/reset", NavReset)

	// Snapshot management
	r.Post("/reload", PostReload)
	r.Get("/snapshot/status", GetSnapshotStatus)

	return r
}
