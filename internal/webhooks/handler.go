package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/TerritoryScout/TS-Backend/internal/metrics"
)

// Reload is called when a verified check-change event arrives. Wired to the
// territory snapshot reload at startup; replaceable in tests.
var Reload func(ctx context.Context) error

// CheckChangeWebhook receives change notifications from the booking backend
// whenever a territory check is created, edited, or removed. The payload is
// advisory; a verified event of any type triggers a full snapshot reload.
func CheckChangeWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MiB
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		http.Error(w, "payload too large or unreadable", http.StatusRequestEntityTooLarge)
		return
	}
	defer r.Body.Close()

	sig := r.Header.Get("Territory-Signature")
	eid := r.Header.Get("Territory-Event-Id")
	if eid == "" {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		http.Error(w, "missing event id", http.StatusBadRequest)
		return
	}

	secret := os.Getenv("CHECKS_WEBHOOK_SECRET")
	if secret == "" {
		http.Error(w, "server misconfigured", http.StatusInternalServerError)
		return
	}
	if !verifySignature(sig, eid, raw, secret) {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event struct {
		Type  string `json:"type"`
		State string `json:"state"`
	}
	if err := json.Unmarshal(raw, &event); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	if Reload == nil {
		http.Error(w, "server misconfigured", http.StatusInternalServerError)
		return
	}
	if err := Reload(r.Context()); err != nil {
		log.Printf("[webhooks] snapshot reload after %s event %s failed: %v", event.Type, eid, err)
		metrics.WebhookEventsTotal.WithLabelValues("reload_failed").Inc()
		http.Error(w, "snapshot reload failed", http.StatusBadGateway)
		return
	}
	metrics.WebhookEventsTotal.WithLabelValues("reloaded").Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"ok":true}`))
}

func verifySignature(sig, eid string, raw []byte, secret string) bool {
	if !strings.HasPrefix(sig, "sha256=") {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(raw)
	mac.Write([]byte(eid))
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(sig), []byte(expected))
}
