package storage

import (
	"fmt"
)

// FileValidationError represents a file validation failure.
type FileValidationError struct {
	Details map[string]any // Error-specific data
	Field   string         // Form field name (e.g., "asset")
	Code    string         // Error code (e.g., "file_too_large", "invalid_mime", "empty_file")
	Message string         // Human-readable message
}

// Error implements the error interface.
func (e *FileValidationError) Error() string {
	return e.Message
}

// Error codes for FileValidationError.
const (
	ErrCodeFileTooLarge = "file_too_large"
	ErrCodeInvalidMIME  = "invalid_mime"
	ErrCodeEmptyFile    = "empty_file"
)

// ValidationField is the form field reported by validation errors.
const ValidationField = "asset"

// ValidationRule checks an upload before it is stored.
type ValidationRule interface {
	// Validate checks size and detected MIME type.
	Validate(size int64, mimeType string) error
}

// ValidationFunc adapts a function to ValidationRule.
type ValidationFunc func(size int64, mimeType string) error

// Validate implements ValidationRule.
func (f ValidationFunc) Validate(size int64, mimeType string) error {
	return f(size, mimeType)
}

// Validate runs all rules and returns the first failure, or nil.
func Validate(size int64, mimeType string, rules ...ValidationRule) error {
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		if err := rule.Validate(size, mimeType); err != nil {
			return err
		}
	}
	return nil
}

// MaxSize returns a rule that rejects files larger than maxBytes.
func MaxSize(maxBytes int64) ValidationRule {
	return ValidationFunc(func(size int64, _ string) error {
		if size <= maxBytes {
			return nil
		}
		return &FileValidationError{
			Field:   ValidationField,
			Code:    ErrCodeFileTooLarge,
			Message: fmt.Sprintf("file size %d exceeds limit of %d bytes", size, maxBytes),
			Details: map[string]any{
				"limit": maxBytes,
				"got":   size,
			},
		}
	})
}

// NotEmpty returns a rule that rejects empty files.
// The message matches the one shown when no file was chosen.
func NotEmpty() ValidationRule {
	return ValidationFunc(func(size int64, _ string) error {
		if size > 0 {
			return nil
		}
		return &FileValidationError{
			Field:   ValidationField,
			Code:    ErrCodeEmptyFile,
			Message: "You must choose a file to upload!",
			Details: map[string]any{},
		}
	})
}

// AllowedTypes returns a rule that only accepts files matching the given MIME
// patterns. Supports wildcards like "image/*".
func AllowedTypes(patterns ...string) ValidationRule {
	return ValidationFunc(func(_ int64, mimeType string) error {
		if matchesMIME(mimeType, patterns) {
			return nil
		}
		return &FileValidationError{
			Field:   ValidationField,
			Code:    ErrCodeInvalidMIME,
			Message: fmt.Sprintf("file type %q is not allowed", mimeType),
			Details: map[string]any{
				"type":    mimeType,
				"allowed": patterns,
			},
		}
	})
}
