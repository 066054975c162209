// Package storage stores asset files and their thumbnail variants.
//
// Two backends implement Storage: S3Storage for S3-compatible object storage
// and FileSystem for the local disk. Both detect the MIME type from content,
// run validation rules before writing, and build URLs for stored keys.
//
// # Basic Usage
//
//	store, err := storage.NewS3(storage.Config{
//		Bucket:    "assets",
//		Region:    "eu-west-1",
//		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	info, err := storage.PutFile(ctx, store, fh,
//		storage.WithKey("assets/42/original/photo.jpg"),
//		storage.WithValidation(
//			storage.NotEmpty(),
//			storage.MaxSize(10<<20),
//			storage.AllowedTypes("image/*", "application/pdf"),
//		),
//	)
//
// Keys are generated as {prefix}/{uuid}{ext} when WithKey is not given.
//
// # Validation
//
// Failing rules return *FileValidationError:
//
//	var verr *storage.FileValidationError
//	if errors.As(err, &verr) {
//		// verr.Field == "asset"
//	}
//
// # URL Generation
//
// Uploads are public-read by default, so URL returns the public address.
// Signed URLs are produced with WithSigned or WithDownload, or when the
// configured ACL is private:
//
//	url, err := store.URL(ctx, info.Key, storage.WithSigned(time.Hour))
//
// FileSystem ignores signing and always returns BaseURL joined with the key.
//
// # Local Disk
//
//	store := storage.NewFileSystem(storage.FileSystemConfig{
//		Root:    "public",
//		BaseURL: "/",
//	})
//
// # Error Handling
//
// Operations return sentinel errors that can be matched with errors.Is:
// ErrNotFound, ErrAccessDenied, ErrInvalidKey, ErrUploadFailed and others.
package storage
