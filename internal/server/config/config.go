// Package config handles configuration for the reference sheet endpoint,
// including defaults, a config file overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the sheet endpoint.
//
// Fields:
//   - ListenAddr: bind address of the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps rows in memory.
//   - ShutdownTimeout: grace period for in-flight requests on stop.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ListenAddr      string
	DatabaseDSN     string
	ShutdownTimeout time.Duration
	LogLevel        string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.DatabaseDSN = ""
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
