// Package config loads runtime configuration for the fuel log CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml/.yml are read as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
//	{
//	  "database_path": "fuellog.db",
//	  "sheets_url": "https://script.google.com/macros/s/.../exec",
//	  "request_timeout": "15s",
//	  "online_check_interval": "30s",
//	  "assume_yes": false,
//	  "log_level": "warn",
//	  "archive": {"bucket": "fuel", "prefix": "fuellog/", "endpoint": "http://127.0.0.1:9000"}
//	}
//
// Values stored through the settings command live in the database, not here;
// sheets_url and -u only override them for the current run.
package config
