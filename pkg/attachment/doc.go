// Package attachment assembles the storage configuration of asset uploads
// and resolves their thumbnail styles.
//
// A Builder reads flat configuration keys (assets.storage, assets.path,
// assets.s3.bucket and so on) and produces a Config for one of three
// backends: filesystem, s3 or cloudFiles. Overrides passed to Build always
// win over the computed values.
//
//	cfg, err := attachment.Build(lookup, attachment.Overrides{
//		attachment.OverridePath: ":class/:id_partition/:style/:filename",
//	})
//	if errors.Is(err, attachment.ErrUnknownBackend) {
//		// assets.storage names no backend
//	}
//
// Styles and processors are deferred: the providers run on the first call to
// Config.Styles or Config.Processors, so extensions registered later in
// startup can still add styles through a StyleRegistry.
//
// Templates are expanded with Interpolate. ThumbnailURL picks placeholder
// images for non-image assets.
package attachment
