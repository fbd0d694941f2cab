package territory

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Policy is the franchise-level configuration supplied by the franchise team,
// not derived from check data. The default-unavailable list is the baseline
// status a region inherits absent contrary evidence; it is treated as
// immutable for the lifetime of a resolution pass.
type Policy struct {
	Franchise struct {
		Name                     string   `yaml:"name"`
		DefaultUnavailableStates []string `yaml:"default_unavailable_states"`
	} `yaml:"franchise"`

	Boundaries struct {
		Provider          string  `yaml:"provider"`
		DataDir           string  `yaml:"data_dir"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		CacheTTLMinutes   int     `yaml:"cache_ttl_minutes"`
	} `yaml:"boundaries"`
}

// DefaultPolicy is what the service runs with when no policy file is
// configured: everything open, TIGERweb geometry, hour-long cache.
func DefaultPolicy() *Policy {
	p := &Policy{}
	p.Boundaries.Provider = "tigerweb"
	p.Boundaries.RequestsPerSecond = 4
	p.Boundaries.CacheTTLMinutes = 60
	return p
}

// LoadPolicy reads the YAML policy file named by the TERRITORY_CONFIG env var,
// or the given path when non-empty. A missing setting falls back to the
// default; a missing file is an error only when explicitly configured.
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		path = os.Getenv("TERRITORY_CONFIG")
	}
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	if err := yaml.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("parsing policy file %s: %w", path, err)
	}
	if p.Boundaries.Provider == "" {
		p.Boundaries.Provider = "tigerweb"
	}
	if p.Boundaries.RequestsPerSecond <= 0 {
		p.Boundaries.RequestsPerSecond = 4
	}
	if p.Boundaries.CacheTTLMinutes <= 0 {
		p.Boundaries.CacheTTLMinutes = 60
	}
	return p, nil
}
