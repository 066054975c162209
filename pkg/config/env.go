package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds every asset configuration key as an environment variable.
// Embed it in an application config to parse it together with other settings.
type EnvConfig struct {
	Storage                string `env:"ASSETS_STORAGE"`
	Path                   string `env:"ASSETS_PATH"`
	URL                    string `env:"ASSETS_URL"`
	S3Bucket               string `env:"ASSETS_S3_BUCKET"`
	S3Key                  string `env:"ASSETS_S3_KEY"`
	S3Secret               string `env:"ASSETS_S3_SECRET"`
	S3Region               string `env:"ASSETS_S3_REGION"`
	S3Endpoint             string `env:"ASSETS_S3_ENDPOINT"`
	S3PathStyle            string `env:"ASSETS_S3_PATH_STYLE"`
	S3HostAlias            string `env:"ASSETS_S3_HOST_ALIAS"`
	CloudFilesContainer    string `env:"ASSETS_CLOUD_FILES_CONTAINER"`
	CloudFilesUsername     string `env:"ASSETS_CLOUD_FILES_USERNAME"`
	CloudFilesAPIKey       string `env:"ASSETS_CLOUD_FILES_API_KEY"`
	CloudFilesServiceNet   string `env:"ASSETS_CLOUD_FILES_SERVICENET"`
	WhinyThumbnails        string `env:"ASSETS_WHINY_THUMBNAILS"`
	AdditionalThumbnails   string `env:"ASSETS_ADDITIONAL_THUMBNAILS"`
	ContentTypes           string `env:"ASSETS_CONTENT_TYPES"`
	MaxAssetSize           string `env:"ASSETS_MAX_ASSET_SIZE"`
	SkipFiletypeValidation string `env:"ASSETS_SKIP_FILETYPE_VALIDATION"`
}

// Map converts the parsed environment into a Map keyed by the dotted names.
func (c EnvConfig) Map() Map {
	return Map{
		KeyStorage:                c.Storage,
		KeyPath:                   c.Path,
		KeyURL:                    c.URL,
		KeyS3Bucket:               c.S3Bucket,
		KeyS3Key:                  c.S3Key,
		KeyS3Secret:               c.S3Secret,
		KeyS3Region:               c.S3Region,
		KeyS3Endpoint:             c.S3Endpoint,
		KeyS3PathStyle:            c.S3PathStyle,
		KeyS3HostAlias:            c.S3HostAlias,
		KeyCloudFilesContainer:    c.CloudFilesContainer,
		KeyCloudFilesUsername:     c.CloudFilesUsername,
		KeyCloudFilesAPIKey:       c.CloudFilesAPIKey,
		KeyCloudFilesServiceNet:   c.CloudFilesServiceNet,
		KeyWhinyThumbnails:        c.WhinyThumbnails,
		KeyAdditionalThumbnails:   c.AdditionalThumbnails,
		KeyContentTypes:           c.ContentTypes,
		KeyMaxAssetSize:           c.MaxAssetSize,
		KeySkipFiletypeValidation: c.SkipFiletypeValidation,
	}
}

// FromEnv reads asset configuration from the process environment.
func FromEnv() (Map, error) {
	return parseEnv(env.Options{})
}

// FromEnvMap reads asset configuration from the given variables instead of
// the process environment.
func FromEnvMap(vars map[string]string) (Map, error) {
	return parseEnv(env.Options{Environment: vars})
}

func parseEnv(opts env.Options) (Map, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.Join(ErrParseEnv, err)
	}
	return cfg.Map(), nil
}
