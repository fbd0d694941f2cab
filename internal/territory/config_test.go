package territory

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPolicyDefaults(t *testing.T) {
	t.Setenv("TERRITORY_CONFIG", "")
	p, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if p.Boundaries.Provider != "tigerweb" || p.Boundaries.CacheTTLMinutes != 60 {
		t.Errorf("unexpected defaults: %+v", p.Boundaries)
	}
	if len(p.Franchise.DefaultUnavailableStates) != 0 {
		t.Errorf("default policy should list no closed states")
	}
}

func TestLoadPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	data := `
franchise:
  name: Acme Franchising
  default_unavailable_states: [CA, WA, ND]
boundaries:
  provider: static
  data_dir: /srv/boundaries
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if p.Franchise.Name != "Acme Franchising" {
		t.Errorf("name = %q", p.Franchise.Name)
	}
	if len(p.Franchise.DefaultUnavailableStates) != 3 {
		t.Errorf("states = %v", p.Franchise.DefaultUnavailableStates)
	}
	if p.Boundaries.Provider != "static" || p.Boundaries.DataDir != "/srv/boundaries" {
		t.Errorf("boundaries = %+v", p.Boundaries)
	}
	// Unset numeric settings fall back to defaults.
	if p.Boundaries.RequestsPerSecond != 4 || p.Boundaries.CacheTTLMinutes != 60 {
		t.Errorf("expected numeric defaults, got %+v", p.Boundaries)
	}
}

func TestLoadPolicyMissingFile(t *testing.T) {
	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for explicitly configured missing file")
	}
}
