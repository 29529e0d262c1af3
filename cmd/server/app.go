package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/mesto-api/internal/api"
	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/service"
	"github.com/phrazzld/mesto-api/internal/service/auth"
	"github.com/phrazzld/mesto-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	store  store.Store

	hasher auth.PasswordHasher
	tokens auth.TokenCodec

	userService service.UserService
	cardService service.CardService
}

// newApplication connects to the configured store and builds the services on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	st, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	app, err := newApplicationWithStore(cfg, logger, st)
	if err != nil {
		if closeErr := st.Close(ctx); closeErr != nil {
			logger.Error("error closing store", slog.String("error", closeErr.Error()))
		}
		return nil, err
	}
	return app, nil
}

// newApplicationWithStore wires the services over an already-open store.
func newApplicationWithStore(cfg *config.Config, logger *slog.Logger, st store.Store) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		store:  st,
	}

	var err error
	app.tokens, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Duration("token_lifetime", cfg.Auth.TokenLifetime))

	app.hasher, err = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.userService = service.NewUserService(st.Users(), app.hasher, app.tokens, logger)
	app.cardService = service.NewCardService(st.Cards(), logger)

	logger.Info("application initialized successfully")
	return app, nil
}

// setupRouter creates the HTTP handler for the application.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.RouterDeps{
		Users:  app.userService,
		Cards:  app.cardService,
		Tokens: app.tokens,
		Server: app.config.Server,
		Auth:   app.config.Auth,
		Logger: app.logger,
	})
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases the store.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer cancel()

	if app.store != nil {
		if err := app.store.Close(ctx); err != nil {
			app.logger.Error("error closing store", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
