package config

import "time"

// Config holds runtime settings for the fuel log CLI.
type Config struct {
	// DatabasePath is the SQLite file holding the ledger and settings.
	DatabasePath string
	// SheetsURL overrides the endpoint URL stored in settings when set.
	SheetsURL string
	// RequestTimeout bounds every call to the sheet endpoint.
	RequestTimeout time.Duration
	// OnlineCheckInterval is how often the REPL probes the endpoint.
	OnlineCheckInterval time.Duration
	// AssumeYes answers every confirmation prompt with yes.
	AssumeYes bool
	LogLevel  string

	Archive ArchiveConfig
}

// ArchiveConfig selects the S3 bucket used by "export --upload".
type ArchiveConfig struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "fuellog.db"
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.LogLevel = "warn"
	c.Archive.Region = "us-east-1"
	c.Archive.Prefix = "fuellog/"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
