package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fuellog/internal/buildinfo"
	"github.com/dmitrijs2005/fuellog/internal/client/cli"
	"github.com/dmitrijs2005/fuellog/internal/client/config"
	"github.com/dmitrijs2005/fuellog/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
