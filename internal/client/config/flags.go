package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/flagx"
)

var knownFlags = []string{"-d", "-u", "-t", "-i", "-y", "-l", "-b", "-g", "-e", "-k", "-s"}

// parseFlags populates Config fields from command-line flags.
//
//	-d string   local database file
//	-u string   sheet endpoint URL (overrides the stored one)
//	-t int      request timeout (seconds)
//	-i int      online check interval (seconds, 0 disables)
//	-y          answer yes to all confirmations
//	-l string   log level (debug, info, warn, error)
//	-b -g -e    archive bucket, region, endpoint
//	-k -s       archive access key id and secret
//
// Only the flags above are parsed; anything else on the command line is left
// for other layers.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.SheetsURL, "u", cfg.SheetsURL, "sheet endpoint url")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.BoolVar(&cfg.AssumeYes, "y", cfg.AssumeYes, "assume yes on confirmations")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	fs.StringVar(&cfg.Archive.Bucket, "b", cfg.Archive.Bucket, "archive bucket")
	fs.StringVar(&cfg.Archive.Region, "g", cfg.Archive.Region, "archive region")
	fs.StringVar(&cfg.Archive.Endpoint, "e", cfg.Archive.Endpoint, "archive endpoint (MinIO)")
	fs.StringVar(&cfg.Archive.AccessKeyID, "k", cfg.Archive.AccessKeyID, "archive access key id")
	fs.StringVar(&cfg.Archive.SecretAccessKey, "s", cfg.Archive.SecretAccessKey, "archive secret access key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
}
