package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/platform/mongo"
	"github.com/phrazzld/mesto-api/internal/platform/postgres"
	"github.com/phrazzld/mesto-api/internal/store"
)

// ErrUnsupportedDatabase is returned for a database URL whose scheme selects
// no known backend.
var ErrUnsupportedDatabase = errors.New("unsupported database url scheme")

const (
	backendMongo    = "mongodb"
	backendPostgres = "postgres"
)

// backendName maps a database URL to the backend its scheme selects, or ""
// when none does.
func backendName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return backendMongo
	case "postgres", "postgresql":
		return backendPostgres
	default:
		return ""
	}
}

// openStore connects to the backend selected by the database URL. For
// Postgres, pending migrations are applied before the store is returned.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.Store, error) {
	switch backendName(cfg.URL) {
	case backendMongo:
		st, err := mongo.Connect(ctx, cfg.URL, cfg.ConnectTimeout, logger)
		if err != nil {
			return nil, err
		}
		return st, nil

	case backendPostgres:
		db, err := postgres.Open(ctx, cfg.URL, cfg.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("connected to postgres")
		return postgres.NewStore(db, logger), nil

	default:
		return nil, ErrUnsupportedDatabase
	}
}
