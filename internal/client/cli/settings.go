package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/fuellog/internal/client/client"
)

// Settings handles:
//
//	settings              show the endpoint URL and last successful contact
//	settings url <url>    store the endpoint URL ("-" clears it)
//	settings test         ping the endpoint
//	settings reset        forget the stored URL and last contact
func (a *App) Settings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		s := a.settingsService.Settings(ctx)
		a.printf("Sheet URL: %s\n", dash(s.SheetsURL))
		if eff := a.settingsService.SheetsURL(ctx); eff != s.SheetsURL {
			a.printf("Overridden for this run: %s\n", eff)
		}
		a.printf("Last OK: %s\n", dash(s.LastOK))
		return nil
	}

	switch args[0] {
	case "url":
		url := strings.Join(args[1:], " ")
		if url == "-" {
			url = ""
		}
		if err := a.settingsService.SetSheetsURL(ctx, url); err != nil {
			a.println("error:", err)
			return err
		}
		a.println("Settings saved.")
		return nil

	case "test":
		if err := a.settingsService.TestConnection(ctx, a.remote); err != nil {
			a.println("Connection test failed:", client.Reason(err))
			return err
		}
		a.setMode(ctx, ModeOnline)
		a.println("Connection OK.")
		return nil

	case "reset":
		if err := a.settingsService.Reset(ctx); err != nil {
			a.println("error:", err)
			return err
		}
		a.println("Settings reset.")
		return nil

	default:
		a.println("Usage: settings [url <url> | test | reset]")
		return nil
	}
}

// Vehicles handles "vehicles" (list) and "vehicles add <label>".
func (a *App) Vehicles(ctx context.Context, args []string) error {
	list := a.settingsService.Vehicles(ctx)

	if len(args) > 0 {
		if args[0] != "add" || len(args) < 2 {
			a.println("Usage: vehicles [add <label>]")
			return nil
		}
		var err error
		if list, err = a.settingsService.AddVehicle(ctx, strings.Join(args[1:], " ")); err != nil {
			a.println("error:", err)
			return err
		}
	}

	for i, v := range list {
		a.printf("  %d) %s\n", i+1, v)
	}
	return nil
}
