// Package assetkit manages uploaded file assets: it classifies them by MIME
// type, resolves where and how they are stored, and renders thumbnail styles.
//
// A [Kit] is built once from a configuration source and shared by the
// application:
//
//	lookup, err := config.FromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	kit, err := assetkit.New(lookup,
//		assetkit.WithLogger(logger.New()),
//		assetkit.WithBaseURL("/uploads"),
//	)
//	if err != nil {
//		log.Fatal(err) // unknown backend, invalid max size
//	}
//
// # Uploading
//
// [Kit.Upload] validates the file against the configured size and type
// limits, stores the original and renders every style for images:
//
//	a := asset.New(header.Filename)
//	at, err := kit.Upload(ctx, a, file, header.Size, nil)
//	if err != nil {
//		return err
//	}
//	thumb := at.Thumbnail("thumbnail")
//
// Non-image assets get a placeholder icon URL from [asset.Attachment.Thumbnail].
//
// # Types
//
// Custom types are registered on the registry before first use:
//
//	reg := assettype.NewDefault()
//	_ = reg.Register("document", []string{"application/msword", "application/rtf"})
//	kit, err := assetkit.New(lookup, assetkit.WithRegistry(reg))
//
// # Per-attachment settings
//
// Overrides win over configured values for every backend:
//
//	at, err := kit.Attach(a, assetkit.Overrides{
//		attachment.OverridePath: ":root/private/:id/:style/:basename.:extension",
//	})
//
// Persistence of asset records lives in package assetstore (pgx) and
// package gormscope (gorm).
package assetkit
