package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sign(secret, eventID, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	mac.Write([]byte(eventID))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func postEvent(t *testing.T, sig, eventID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/checks/changed", strings.NewReader(body))
	if sig != "" {
		req.Header.Set("Territory-Signature", sig)
	}
	if eventID != "" {
		req.Header.Set("Territory-Event-Id", eventID)
	}
	w := httptest.NewRecorder()
	CheckChangeWebhook(w, req)
	return w
}

func TestCheckChangeWebhookReloads(t *testing.T) {
	t.Setenv("CHECKS_WEBHOOK_SECRET", "topsecret")
	reloaded := false
	Reload = func(ctx context.Context) error {
		reloaded = true
		return nil
	}
	defer func() { Reload = nil }()

	body := `{"type": "check.updated", "state": "TX"}`
	w := postEvent(t, sign("topsecret", "evt_1", body), "evt_1", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !reloaded {
		t.Error("expected a snapshot reload")
	}
}

func TestCheckChangeWebhookRejectsBadSignature(t *testing.T) {
	t.Setenv("CHECKS_WEBHOOK_SECRET", "topsecret")
	called := false
	Reload = func(ctx context.Context) error {
		called = true
		return nil
	}
	defer func() { Reload = nil }()

	body := `{"type": "check.updated"}`
	w := postEvent(t, sign("wrongsecret", "evt_2", body), "evt_2", body)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", w.Code)
	}
	if called {
		t.Error("reload must not run for an unverified event")
	}
}

func TestCheckChangeWebhookRequiresEventID(t *testing.T) {
	t.Setenv("CHECKS_WEBHOOK_SECRET", "topsecret")
	w := postEvent(t, "sha256=deadbeef", "", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", w.Code)
	}
}

func TestCheckChangeWebhookReloadFailure(t *testing.T) {
	t.Setenv("CHECKS_WEBHOOK_SECRET", "topsecret")
	Reload = func(ctx context.Context) error { return errors.New("db down") }
	defer func() { Reload = nil }()

	body := `{"type": "check.deleted"}`
	w := postEvent(t, sign("topsecret", "evt_3", body), "evt_3", body)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d; want 502", w.Code)
	}
}
