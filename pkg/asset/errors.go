package asset

import "errors"

var (
	ErrNoFile       = errors.New("asset: no file attached")
	ErrReadUpload   = errors.New("asset: failed to read upload")
	ErrProcessStyle = errors.New("asset: failed to process style")
)
