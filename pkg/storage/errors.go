package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig = errors.New("storage: invalid configuration")
	ErrEmptyFile     = errors.New("storage: file is empty")
	// ErrInvalidKey is returned for blank keys and keys containing "..".
	ErrInvalidKey    = errors.New("storage: invalid key")
	ErrNotFound      = errors.New("storage: file not found")
	ErrAccessDenied  = errors.New("storage: access denied")
	ErrUploadFailed  = errors.New("storage: upload failed")
	ErrDeleteFailed  = errors.New("storage: delete failed")
	ErrPresignFailed = errors.New("storage: presign failed")
)

// s3ErrorCodes maps S3 API error codes onto sentinels.
var s3ErrorCodes = map[string]error{
	"NoSuchKey":    ErrNotFound,
	"NotFound":     ErrNotFound,
	"AccessDenied": ErrAccessDenied,
	"Forbidden":    ErrAccessDenied,
}

// wrapS3Error classifies err, falling back to op. The cause is kept as text
// so that only the sentinel is matchable.
func wrapS3Error(err, op error) error {
	sentinel := op
	var apiErr smithy.APIError
	var noKey *types.NoSuchKey
	switch {
	case errors.As(err, &noKey):
		sentinel = ErrNotFound
	case errors.As(err, &apiErr):
		if s, ok := s3ErrorCodes[apiErr.ErrorCode()]; ok {
			sentinel = s
		}
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
