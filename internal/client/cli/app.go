package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/client/archive"
	"github.com/dmitrijs2005/fuellog/internal/client/client"
	"github.com/dmitrijs2005/fuellog/internal/client/config"
	"github.com/dmitrijs2005/fuellog/internal/client/services"
	"github.com/dmitrijs2005/fuellog/internal/filex"
	"github.com/dmitrijs2005/fuellog/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	// ModeLocal: no endpoint configured, everything is queued.
	ModeLocal Mode = "local"
)

// uploader stores an export remotely. *archive.Uploader implements it.
type uploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

type App struct {
	config          *config.Config
	entryService    services.EntryService
	settingsService services.SettingsService
	remote          client.Client
	logger          logging.Logger

	modeMu sync.Mutex
	mode   Mode
	reader *bufio.Reader
	out    io.Writer

	newUploader func(ctx context.Context) (uploader, error)
	now         func() time.Time
	closeFn     func() error
}

// NewApp opens the local database and wires the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	ss := services.NewSettingsService(repos.Metadata, c.SheetsURL, logger)
	remote := client.NewHTTPClient(ss.SheetsURL, c.RequestTimeout, logger)
	es := services.NewEntryService(remote, repos.Entries, ss.SheetsURL, logger)

	a := &App{
		config:          c,
		entryService:    es,
		settingsService: ss,
		remote:          remote,
		logger:          logger,
		reader:          bufio.NewReader(os.Stdin),
		out:             os.Stdout,
		now:             time.Now,
		closeFn:         repos.Close,
	}
	a.newUploader = func(ctx context.Context) (uploader, error) {
		return archive.NewUploader(ctx, archive.Config(a.config.Archive))
	}
	return a, nil
}

// Close releases the local database.
func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// setMode stores mode and returns the previous one. The watcher goroutine
// and the REPL both touch it.
func (a *App) setMode(ctx context.Context, mode Mode) Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()

	prev := a.mode
	if prev != mode {
		a.mode = mode
		a.logger.Info(ctx, "connection mode changed", "mode", mode)
	}
	return prev
}

func (a *App) currentMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

// checkOnline probes the endpoint and updates Mode. It reports whether the
// endpoint came back after being offline.
func (a *App) checkOnline(ctx context.Context) bool {
	if a.settingsService.SheetsURL(ctx) == "" {
		a.setMode(ctx, ModeLocal)
		return false
	}

	pctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	err := a.remote.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return false
	}
	return a.setMode(ctx, ModeOnline) == ModeOffline
}

// StartOnlineStatusWatcher pings the endpoint every interval until ctx is
// done. When the connection comes back while entries are queued, it tells
// the user to run sync.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.checkOnline(ctx) {
				continue
			}
			if n, err := a.entryService.QueuedCount(ctx); err == nil && n > 0 {
				a.printf("\nConnection restored, %d queued. Type 'sync' to send.\n", n)
			}

		case <-ctx.Done():
			return
		}
	}
}
