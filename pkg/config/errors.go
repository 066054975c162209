package config

import "errors"

var (
	ErrParseEnv  = errors.New("config: failed to parse environment")
	ErrReadFile  = errors.New("config: failed to read file")
	ErrParseYAML = errors.New("config: failed to parse yaml")
)
