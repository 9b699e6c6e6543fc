// Package server initializes and runs the reference sheet endpoint.
// It picks the row storage (PostgreSQL or memory), serves the action
// protocol and Prometheus metrics over HTTP, and shuts down gracefully.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/logging"
	"github.com/dmitrijs2005/fuellog/internal/server/config"
	"github.com/dmitrijs2005/fuellog/internal/server/handler"
	"github.com/dmitrijs2005/fuellog/internal/server/metrics"
	"github.com/dmitrijs2005/fuellog/internal/server/migrations"
	"github.com/dmitrijs2005/fuellog/internal/server/repositories/rows"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const readHeaderTimeout = 10 * time.Second

// seams for tests
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	migrateUp = migrations.Up
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repo    rows.Repository
	metrics *metrics.Metrics
	db      *sql.DB
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop{}
	}

	app := &App{config: c, logger: logger, metrics: metrics.New()}

	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN, rows are kept in memory")
		app.repo = rows.NewMemoryRepository()
		return app, nil
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := migrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app.db = db
	app.repo = rows.NewPostgresRepository(db)
	return app, nil
}

// Handler routes the action protocol on "/" and metrics on "/metrics".
func (app *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	mux.Handle("/", handler.New(app.repo, app.metrics, app.logger))
	return mux
}

// Serve answers requests on ln until ctx is cancelled, then drains
// in-flight requests for at most ShutdownTimeout.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	app.logger.Info(ctx, "sheet endpoint listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	app.logger.Info(ctx, "sheet endpoint stopped")
	return nil
}

func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	ln, err := net.Listen("tcp", app.config.ListenAddr)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}
	if err := app.Serve(ctx, ln); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "close database", "error", err)
	}
}
