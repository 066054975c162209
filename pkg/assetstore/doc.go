// Package assetstore persists asset records in PostgreSQL.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] for connections and
// [github.com/pressly/goose/v3] for the embedded schema migration.
// Listings are filtered with the type conditions of an
// [assettype.Registry], so registering a type makes it queryable.
//
// # Configuration
//
// Connection settings are loaded from environment variables:
//
//	ASSETS_DATABASE_URL                  - PostgreSQL connection URL (required)
//	ASSETS_DATABASE_MIGRATIONS_TABLE     - Migrations table name (default: asset_migrations)
//	ASSETS_DATABASE_MAX_OPEN_CONNS       - Maximum open connections (default: 10)
//	ASSETS_DATABASE_MIN_CONNS            - Minimum idle connections (default: 2)
//	ASSETS_DATABASE_HEALTHCHECK_PERIOD   - Health check interval (default: 1m)
//	ASSETS_DATABASE_MAX_CONN_IDLE_TIME   - Maximum connection idle time (default: 10m)
//	ASSETS_DATABASE_MAX_CONN_LIFETIME    - Maximum connection lifetime (default: 30m)
//	ASSETS_DATABASE_RETRY_ATTEMPTS       - Connection retry attempts (default: 3)
//	ASSETS_DATABASE_RETRY_INTERVAL       - Base retry interval (default: 5s)
//
// # Usage
//
//	cfg, err := assetstore.ConfigFromEnv()
//	if err != nil {
//		return err
//	}
//	pool, err := assetstore.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := assetstore.Migrate(ctx, pool, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
//	store := assetstore.New(pool, registry)
//	page, err := store.Find(ctx, assetstore.Query{Search: "logo", Types: []string{"image"}})
//
// # Transactions
//
// [WithTx] runs a function in a transaction; [Store.WithTx] binds a store to it:
//
//	err := assetstore.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		return store.WithTx(tx).Create(ctx, a)
//	})
package assetstore
