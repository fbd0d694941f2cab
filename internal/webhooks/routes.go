package webhooks

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Signed, not session-authenticated
	r.Post("/checks/changed", CheckChangeWebhook)

	return r
}
