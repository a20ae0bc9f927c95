package config

import (
	"time"

	"github.com/cliniclink/cliniclink/internal/client/tokenstore"
)

// Config holds runtime settings for the ClinicLink CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - StateDir: directory holding the persisted session token, cached user
//     and preferences.
//   - OnlineCheckInterval: how often the client probes server reachability.
//
// Units: OnlineCheckInterval is a time.Duration (e.g., 3*time.Second).
type Config struct {
	ServerBaseURL       string
	StateDir            string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	if dir, err := tokenstore.DefaultStateDir(); err == nil {
		c.StateDir = dir
	} else {
		c.StateDir = ".cliniclink"
	}
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
