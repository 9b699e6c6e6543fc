package config

import (
	"time"

	"github.com/dmitrijs2005/fuellog/internal/confx"
	"github.com/dmitrijs2005/fuellog/internal/flagx"
	"github.com/dmitrijs2005/fuellog/internal/timex"
)

// FileConfig is the on-disk shape of the config file (JSON or YAML).
// Durations accept "15s" style strings or integer nanoseconds.
type FileConfig struct {
	DatabasePath        string         `json:"database_path" yaml:"database_path"`
	SheetsURL           string         `json:"sheets_url" yaml:"sheets_url"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	AssumeYes           bool           `json:"assume_yes" yaml:"assume_yes"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`

	Archive struct {
		Bucket          string `json:"bucket" yaml:"bucket"`
		Prefix          string `json:"prefix" yaml:"prefix"`
		Region          string `json:"region" yaml:"region"`
		Endpoint        string `json:"endpoint" yaml:"endpoint"`
		AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
		SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
	} `json:"archive" yaml:"archive"`
}

// parseFile overlays Config with the non-empty values of the file named by
// -c/-config. Without that flag it does nothing. Read or decode errors panic,
// like flag errors do.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := confx.DecodeFile(path, &fc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.SheetsURL, fc.SheetsURL)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setDuration(&cfg.OnlineCheckInterval, fc.OnlineCheckInterval)
	cfg.AssumeYes = cfg.AssumeYes || fc.AssumeYes
	setString(&cfg.LogLevel, fc.LogLevel)

	setString(&cfg.Archive.Bucket, fc.Archive.Bucket)
	setString(&cfg.Archive.Prefix, fc.Archive.Prefix)
	setString(&cfg.Archive.Region, fc.Archive.Region)
	setString(&cfg.Archive.Endpoint, fc.Archive.Endpoint)
	setString(&cfg.Archive.AccessKeyID, fc.Archive.AccessKeyID)
	setString(&cfg.Archive.SecretAccessKey, fc.Archive.SecretAccessKey)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
