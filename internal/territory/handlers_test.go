package territory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func setTestSnapshot(t *testing.T, defaultUnavailable []string, checks ...Check) {
	t.Helper()
	ds := NewDataset(checks)
	currentResolver.Store(NewResolver(ds, defaultUnavailable))
	snapshotMeta.Store(&SnapshotMeta{Checks: ds.CheckCount(), States: len(ds.States), LoadedAt: time.Now()})
	Nav = NewNavigator(ds)
	Boundaries = nil
}

func TestGetStatusEndpoint(t *testing.T) {
	setTestSnapshot(t, []string{"CA"},
		ck("TX", "Travis", "Austin", "78701", "Available"),
	)
	srv := httptest.NewServer(SetupRoutes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status?state=TX&county=Travis&city=Austin&zip=78701")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != StatusAvailable {
		t.Errorf("status = %s", body.Status)
	}
	if body.DefaultStatus != StatusAvailable {
		t.Errorf("default status = %s", body.DefaultStatus)
	}
}

func TestGetStatusRejectsBrokenScope(t *testing.T) {
	setTestSnapshot(t, nil)
	srv := httptest.NewServer(SetupRoutes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status?zip=78701")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status code = %d; want 400", resp.StatusCode)
	}
}

func TestGetBlanketNotFound(t *testing.T) {
	setTestSnapshot(t, nil,
		ck("TX", "Travis", "Austin", "78701", "Available"),
	)
	srv := httptest.NewServer(SetupRoutes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/blanket?state=TX&county=Travis&city=Austin")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status code = %d; want 404", resp.StatusCode)
	}
}

func TestGetChildrenEndpoint(t *testing.T) {
	setTestSnapshot(t, nil,
		ck("TX", "Travis", "Austin", "78701", "Available"),
		ck("TX", "Harris", "Houston", "77001", "Available"),
	)
	srv := httptest.NewServer(SetupRoutes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/children?tier=county&state=TX")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body struct {
		Children []string `json:"children"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Children) != 2 {
		t.Errorf("children = %v", body.Children)
	}

	bad, err := http.Get(srv.URL + "/children?tier=precinct&state=TX")
	if err != nil {
		t.Fatal(err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("bad tier status code = %d; want 400", bad.StatusCode)
	}
}

func TestBoundariesDegradeWithoutProvider(t *testing.T) {
	setTestSnapshot(t, nil)
	srv := httptest.NewServer(SetupRoutes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/boundaries?tier=state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}
	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		t.Fatal(err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 0 {
		t.Errorf("expected empty collection, got %+v", fc)
	}
}

func TestNavEndpoints(t *testing.T) {
	setTestSnapshot(t, nil,
		ck("TX", "Travis", "Austin", "78701", "Available"),
	)
	srv := httptest.NewServer(SetupRoutes())
	defer srv.Close()

	post := func(path, body string) navResponse {
		t.Helper()
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status code = %d", path, resp.StatusCode)
		}
		var nav navResponse
		if err := json.NewDecoder(resp.Body).Decode(&nav); err != nil {
			t.Fatal(err)
		}
		return nav
	}

	nav := post("/nav/select", `{"tier": "state", "value": "TX"}`)
	if nav.Scope.State != "TX" || nav.NextTier != TierCounty {
		t.Errorf("after state select: %+v", nav)
	}

	nav = post("/nav/select", `{"tier": "county", "value": "Travis"}`)
	if len(nav.Breadcrumbs) != 2 {
		t.Errorf("breadcrumbs = %+v", nav.Breadcrumbs)
	}

	nav = post("/nav/breadcrumb", `{"tier": "state"}`)
	if nav.Scope.County != "" {
		t.Errorf("breadcrumb click left county set: %+v", nav)
	}

	nav = post("/nav/reset", `{}`)
	if nav.Scope != (Scope{}) || nav.Terminal {
		t.Errorf("after reset: %+v", nav)
	}
}

func TestSnapshotStatusEndpoint(t *testing.T) {
	setTestSnapshot(t, nil,
		ck("TX", "Travis", "Austin", "78701", "Available"),
	)
	srv := httptest.NewServer(SetupRoutes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/snapshot/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var meta SnapshotMeta
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		t.Fatal(err)
	}
	if meta.Checks != 1 || meta.States != 1 {
		t.Errorf("meta = %+v", meta)
	}
}
