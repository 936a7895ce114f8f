package config

import "time"

// Config holds runtime settings for the docuport CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the portal REST backend.
//   - RequestTimeout: per-request HTTP timeout.
//   - StorePath: SQLite DSN of the local store (persisted token slot).
//   - Verbose: enables debug-level logging.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	StorePath      string
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.StorePath = "docuport.db"
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from a config file and environment (if present) and command-line flags
// (if present). Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
