package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/hirewire/jobboard/internal/jobboard/graph"
	httpapi "github.com/hirewire/jobboard/internal/jobboard/http"
	"github.com/hirewire/jobboard/internal/jobboard/service"
	"github.com/hirewire/jobboard/internal/jobboard/store"
	"github.com/hirewire/jobboard/internal/jobboard/store/drivers/sqlite"
	"github.com/hirewire/jobboard/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the job board server with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	authService        *service.AuthService
	userService        *service.UserService
	employerService    *service.EmployerService
	jobService         *service.JobService
	applicationService *service.ApplicationService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized. Configuration
// errors surface here, before the server binds its port.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "jobboard",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
			Release:     BuildVersion,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("job board starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down job board...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	sentry.Flush(2 * time.Second)

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("job board stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.authService = service.NewAuthService(app.db, app.cfg.TokenSettings())
	app.userService = &service.UserService{Store: app.db}
	app.employerService = &service.EmployerService{Store: app.db}
	app.jobService = &service.JobService{Store: app.db}
	app.applicationService = &service.ApplicationService{Store: app.db}
}

func (app *Application) initHTTP() {
	resolver := graph.NewResolver(
		app.authService,
		app.userService,
		app.employerService,
		app.jobService,
		app.applicationService,
	)

	router := httpapi.NewRouter(graph.NewSchema(resolver), app.db, app.logger, BuildVersion)
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
