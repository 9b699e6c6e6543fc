package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN, empty for in-memory rows
//	-t int      shutdown timeout, seconds
//	-l string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	shutdown := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdown) * time.Second
}
