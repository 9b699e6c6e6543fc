package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := string(a.currentMode())
	if n, err := a.entryService.QueuedCount(context.Background()); err == nil && n > 0 {
		s = fmt.Sprintf("%s, %d queued", s, n)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the interactive session until the user exits or ctx is done.
// With an endpoint configured it first pulls the sheet history; failures are
// only reported, the session starts regardless.
func (a *App) Root(ctx context.Context) {
	tty := interactive()
	if tty {
		a.println("Fuel log (type 'help' for commands)")
	}

	a.checkOnline(ctx)
	if a.currentMode() == ModeOnline {
		if err := a.entryService.Refresh(ctx); err != nil {
			a.logger.Warn(ctx, "startup refresh failed", "error", err)
		}
	}

	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader, tty)
}

// Run starts the session and closes the database afterwards.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error(ctx, "close failed", "error", err)
		}
	}()
	a.Root(ctx)
}
