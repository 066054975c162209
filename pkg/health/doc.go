// Package health runs named readiness checks for asset infrastructure.
//
// Checks share the func(context.Context) error signature of
// [assetstore.Healthcheck] and [StorageCheck], run in parallel and are bounded
// by a single timeout:
//
//	resp := health.Run(ctx, health.Checks{
//		"storage":  health.StorageCheck(store, ""),
//		"database": assetstore.Healthcheck(pool),
//	}, health.WithTimeout(3*time.Second))
//	if err := resp.Err(); err != nil {
//		log.Error("not ready", "error", err)
//	}
package health
