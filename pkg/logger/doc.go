// Package logger builds the slog loggers used across the asset packages.
//
// Loggers write JSON records and can enrich every record with values carried
// in the context, such as the ID of the asset being processed:
//
//	log := logger.New(logger.WithLevel(slog.LevelDebug))
//	ctx := logger.WithAssetID(ctx, asset.ID.String())
//	log.InfoContext(ctx, "style rendered", slog.String("style", "thumbnail"))
//	// {"level":"INFO","msg":"style rendered","style":"thumbnail","asset_id":"..."}
//
// Components default to NewNope, which discards everything.
//
// # Sentry
//
// NewWithSentry additionally forwards warnings and errors to Sentry. With an
// empty DSN, or when the SDK fails to initialize, it falls back to stdout only.
package logger
