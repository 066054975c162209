package assetstore

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/dmitrymomot/assetkit/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DefaultMigrationsTable records applied versions when Config leaves it empty.
const DefaultMigrationsTable = "asset_migrations"

// Migrate brings the assets schema up to date and logs every applied version.
func Migrate(ctx context.Context, pool *pgxpool.Pool, table string, log *slog.Logger) error {
	if log == nil {
		log = logger.NewNope()
	}
	if table == "" {
		table = DefaultMigrationsTable
	}

	provider, err := newProvider(pool, table)
	if err != nil {
		return errors.Join(ErrPrepareMigrations, err)
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("file", r.Source.Path),
			slog.Duration("took", r.Duration),
		)
	}
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	return nil
}

// newProvider runs on a database/sql view of the pool. Closing it would
// close the pool's connections, so it is left open.
func newProvider(pool *pgxpool.Pool, table string) (*goose.Provider, error) {
	store, err := database.NewStore(database.DialectPostgres, table)
	if err != nil {
		return nil, err
	}
	dir, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider("", stdlib.OpenDBFromPool(pool), dir, goose.WithStore(store))
}
