package attachment

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownBackend      = errors.New("attachment: unknown storage backend")
	ErrBackendNotSupported = errors.New("attachment: storage backend has no client in this module")
	ErrInvalidOverride     = errors.New("attachment: invalid override value")
	ErrInvalidMaxSize      = errors.New("attachment: invalid max asset size")
)

// UnknownBackendError reports a storage selector that names no backend.
type UnknownBackendError struct {
	Selector string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("attachment: unknown storage backend %q", e.Selector)
}

// Is reports whether target is ErrUnknownBackend.
func (e *UnknownBackendError) Is(target error) bool {
	return target == ErrUnknownBackend
}
