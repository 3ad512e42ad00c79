// Package config handles configuration for the console component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the ImaraRent console.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - StateDBPath: path of the local sqlite database holding the session
//     record.
//   - RequestTimeout: per-request deadline for backend calls.
type Config struct {
	ServerBaseURL  string
	StateDBPath    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.StateDBPath = "imararent.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
