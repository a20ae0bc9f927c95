package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config with values from environment variables, using the
// `env` struct tags on Config. Unset variables leave the current values in
// place. Parse errors panic, mirroring the JSON and flag stages.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
