package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	httpapi "github.com/aussiebroadwan/ledger/internal/ledger/http"
	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
	"github.com/aussiebroadwan/ledger/internal/ledger/store/drivers/sqlite"
	"github.com/aussiebroadwan/ledger/pkg/cryptox"
	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/ledger/internal/ledger/app.BuildVersion=..."
var BuildVersion = "v0.1.0"

// Application encapsulates the ledger service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger
	secret []byte

	// Core dependencies
	db  store.Store
	ref domain.ReferenceData

	// Services
	authService    *service.AuthService
	expenseService *service.ExpenseService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "ledger-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cryptox.SetPasswordCost(cfg.PasswordCost); err != nil {
		return nil, err
	}
	app.initSecret()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ref, err := loadReferenceData(context.Background(), app.db)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.ref = ref
	app.logger.Info("reference data loaded",
		"categories", len(ref.Categories()),
		"currencies", len(ref.Currencies()),
	)

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the configured router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("ledger service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down ledger service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("ledger service stopped")
	return nil
}

// initSecret uses the configured secret, or a random one in dev. Tokens
// minted with a random secret do not survive a restart.
func (app *Application) initSecret() {
	if app.cfg.SecretKey != "" {
		app.secret = []byte(app.cfg.SecretKey)
		return
	}
	app.secret = []byte(cryptox.MustGenerateToken(cryptox.TokenSize256))
	app.logger.Warn("LEDGER_SECRET_KEY not set, using a random per-process secret")
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initServices() error {
	issuer, err := service.NewTokenIssuer(app.secret, app.cfg.Issuer, app.cfg.AccessTokenTTL, app.cfg.RefreshTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	app.authService = service.NewAuthService(app.db, issuer, cryptox.BcryptHasher{}, app.secret)
	app.expenseService = service.NewExpenseService(app.db, app.ref)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.ref, app.logger)
	router.AuthService = app.authService
	router.ExpenseService = app.expenseService
	if app.cfg.AuthRateLimit.Window > 0 {
		router.AuthLimit = app.cfg.AuthRateLimit
	}
	if app.cfg.ExpenseRateLimit.Window > 0 {
		router.ExpenseLimit = app.cfg.ExpenseRateLimit
	}
	if app.cfg.HealthRateLimit.Window > 0 {
		router.HealthLimit = app.cfg.HealthRateLimit
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
