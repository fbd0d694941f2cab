package provider

import (
	"os"
	"strconv"
	"strings"
)

// ProviderType identifies which geometry source to use.
type ProviderType string

const (
	ProviderTIGERweb ProviderType = "tigerweb"
	ProviderStatic   ProviderType = "static"
)

// Config holds configuration for the boundary geometry provider.
type Config struct {
	// Provider type: "tigerweb" or "static"
	Provider ProviderType

	// Static-provider config
	DataDir string

	// TIGERweb tuning
	RequestsPerSecond float64
}

// LoadFromEnv loads provider configuration from environment variables.
//
// Environment variables:
//   - BOUNDARY_PROVIDER: "tigerweb" or "static" (default: "tigerweb")
//   - BOUNDARY_DATA_DIR: GeoJSON directory (required if using static)
//   - BOUNDARY_RPS: upstream requests per second (default: 4)
func LoadFromEnv() Config {
	providerStr := strings.ToLower(strings.TrimSpace(os.Getenv("BOUNDARY_PROVIDER")))

	var provider ProviderType
	switch providerStr {
	case "static":
		provider = ProviderStatic
	default:
		provider = ProviderTIGERweb
	}

	rps := 4.0
	if v := os.Getenv("BOUNDARY_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			rps = f
		}
	}

	return Config{
		Provider:          provider,
		DataDir:           os.Getenv("BOUNDARY_DATA_DIR"),
		RequestsPerSecond: rps,
	}
}

// Validate checks that the configuration is valid for the selected provider.
func (c Config) Validate() error {
	if c.Provider == ProviderStatic && c.DataDir == "" {
		return ErrMissingDataDir
	}
	return nil
}
