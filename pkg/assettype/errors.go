package assettype

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidType   = errors.New("assettype: type name and MIME types are required")
	ErrReservedType  = errors.New("assettype: type name is reserved")
	ErrUnknownType   = errors.New("assettype: unknown type")
	ErrDuplicateType = errors.New("assettype: type already registered with different MIME types")
	ErrAliasCycle    = errors.New("assettype: alias refers to itself")
)

// DuplicateTypeError is returned when a type name is registered again with a
// different MIME set and without WithOverride.
type DuplicateTypeError struct {
	Name      string
	Existing  []string
	Requested []string
}

// Error implements the error interface.
func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("assettype: type %q already registered as [%s], refusing [%s]",
		e.Name, strings.Join(e.Existing, " "), strings.Join(e.Requested, " "))
}

// Is makes errors.Is(err, ErrDuplicateType) match.
func (e *DuplicateTypeError) Is(target error) bool {
	return target == ErrDuplicateType
}
