package assetstore

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("assetstore: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("assetstore: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("assetstore: healthcheck failed")
	ErrPrepareMigrations        = errors.New("assetstore migrator: failed to prepare migrations")
	ErrApplyMigrations          = errors.New("assetstore migrator: failed to apply migrations")
	ErrNotFound                 = errors.New("assetstore: asset not found")
	ErrInvalidQuery             = errors.New("assetstore: invalid query")
)
