package config

import (
	"github.com/dmitrijs2005/fuellog/internal/confx"
	"github.com/dmitrijs2005/fuellog/internal/flagx"
	"github.com/dmitrijs2005/fuellog/internal/timex"
)

// FileConfig is the on-disk shape of the server config file (JSON or YAML).
type FileConfig struct {
	ListenAddr      string         `json:"listen_addr" yaml:"listen_addr"`
	DatabaseDSN     string         `json:"database_dsn" yaml:"database_dsn"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays Config with the non-empty values of the file named by
// -c/-config. Read or decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := confx.DecodeFile(path, &fc); err != nil {
		panic(err)
	}

	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	if fc.DatabaseDSN != "" {
		cfg.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.ShutdownTimeout.Duration != 0 {
		cfg.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
