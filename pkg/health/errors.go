package health

import "errors"

var (
	// ErrCheckFailed is joined with the failures of an unhealthy run.
	ErrCheckFailed = errors.New("health: check failed")
	// ErrCheckTimeout wraps checks that ran past the deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
	// ErrNoCheck reports a nil CheckFunc.
	ErrNoCheck = errors.New("health: check is not defined")
	// ErrNoStorage is returned by StorageCheck without a storage client.
	ErrNoStorage = errors.New("health: storage is not configured")
)
