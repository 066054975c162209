package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("no rules", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, Validate(0, ""))
	})

	t.Run("nil rules are skipped", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, Validate(10, "image/png", nil, MaxSize(10)))
	})

	t.Run("first failure wins", func(t *testing.T) {
		t.Parallel()
		err := Validate(0, "text/plain", NotEmpty(), AllowedTypes("image/*"))

		var verr *FileValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, ErrCodeEmptyFile, verr.Code)
	})
}

func TestMaxSize(t *testing.T) {
	t.Parallel()

	rule := MaxSize(1024)
	require.NoError(t, rule.Validate(1024, ""))

	err := rule.Validate(1025, "")
	var verr *FileValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, ErrCodeFileTooLarge, verr.Code)
	require.Equal(t, ValidationField, verr.Field)
	require.Equal(t, int64(1024), verr.Details["limit"])
	require.Equal(t, int64(1025), verr.Details["got"])
}

func TestNotEmpty(t *testing.T) {
	t.Parallel()

	rule := NotEmpty()
	require.NoError(t, rule.Validate(1, ""))

	err := rule.Validate(0, "")
	var verr *FileValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "You must choose a file to upload!", verr.Error())
}

func TestAllowedTypes(t *testing.T) {
	t.Parallel()

	rule := AllowedTypes("image/*", "application/pdf")
	require.NoError(t, rule.Validate(1, "image/jpeg"))
	require.NoError(t, rule.Validate(1, "application/pdf"))

	err := rule.Validate(1, "video/mp4")
	var verr *FileValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, ErrCodeInvalidMIME, verr.Code)
	require.Equal(t, "video/mp4", verr.Details["type"])
}
