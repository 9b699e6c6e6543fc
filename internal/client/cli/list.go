package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fuellog/internal/client/client"
	"github.com/dmitrijs2005/fuellog/internal/common"
)

// List prints the ledger, newest first.
func (a *App) List(ctx context.Context) error {
	rows, err := a.entryService.List(ctx)
	if err != nil {
		a.logger.Error(ctx, "list failed", "error", err)
		a.println("error:", err)
		return err
	}

	if len(rows) == 0 {
		a.println("No entries yet.")
		return nil
	}

	queued := 0
	for _, e := range rows {
		if !e.Acknowledged {
			queued++
		}
	}
	if queued > 0 {
		a.printf("History (%d queued)\n", queued)
	} else {
		a.println("History")
	}
	for _, e := range rows {
		a.println(formatEntry(e))
	}
	return nil
}

// Show prints one entry by id.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: show <id>")
		return nil
	}
	e, err := a.entryService.Get(ctx, args[0])
	if errors.Is(err, common.ErrorNotFound) {
		a.println("No entry with id", args[0])
		return err
	}
	if err != nil {
		a.println("error:", err)
		return err
	}
	a.printf("%s\n%s\n", e.ID, formatEntry(*e))
	return nil
}

// Sync sends every queued entry.
func (a *App) Sync(ctx context.Context) error {
	res, err := a.entryService.Sync(ctx, a.confirm)
	if err != nil {
		a.logger.Error(ctx, "sync failed", "error", err)
		a.println("error:", err)
		return err
	}
	a.println(syncMessage(res))
	return nil
}

// Refresh pulls the sheet's history. Failures are reported, never fatal.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.entryService.Refresh(ctx); err != nil {
		a.println("Could not fetch history from the sheet:", client.Reason(err))
		return err
	}
	a.println("History fetched from the sheet.")
	return nil
}

// Queued prints the number of entries waiting to be sent.
func (a *App) Queued(ctx context.Context) error {
	n, err := a.entryService.QueuedCount(ctx)
	if err != nil {
		a.println("error:", err)
		return err
	}
	a.printf("Queued: %d\n", n)
	return nil
}
