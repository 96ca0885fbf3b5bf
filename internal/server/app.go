// Package server wires the studynotes application together: database,
// migrations, blob storage, services, the HTTP server and the optional
// gRPC health endpoint. It also handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/studynotes/internal/dbx"
	"github.com/dmitrijs2005/studynotes/internal/logging"
	"github.com/dmitrijs2005/studynotes/internal/server/config"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/studynotes/internal/server/services"
	"github.com/dmitrijs2005/studynotes/internal/server/storage"
	"github.com/dmitrijs2005/studynotes/internal/server/web"

	gs "github.com/dmitrijs2005/studynotes/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	web    *web.Server
	health *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, dialect, err := dbx.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager(dialect)
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := storage.New(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	us := services.NewUserService(db, rm, c, logger)
	ds := services.NewDocumentService(db, rm, store, c, logger)

	app := &App{
		config: c,
		logger: logger,
		db:     db,
		web:    web.NewServer(c.EndpointAddrHTTP, logger, us, ds, c.MaxUploadSize),
	}
	if c.EndpointAddrGRPCHealth != "" {
		app.health = gs.NewHealthServer(c.EndpointAddrGRPCHealth, logger)
	}

	logger.Info(ctx, "app initialized", "dialect", string(dialect), "storage", c.StorageBackend)
	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.web.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}
	// without the web server there is nothing left to serve
	cancelFunc()
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	app.health.SetServing(true)
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a termination signal arrives or the
// HTTP server fails, then closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHealthServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "app stopped")
}
