// Package config provides the flat key/value configuration lookup consumed by
// the asset packages.
//
// Keys follow the dotted naming used by the host CMS, e.g. "assets.storage" or
// "assets.s3.bucket". Values are strings; blank or whitespace-only values are
// treated as absent and present values are returned trimmed.
//
// # Sources
//
// A Lookup can be backed by a plain map, by environment variables or by a YAML
// file. Sources can be chained, the first source holding a key wins:
//
//	envCfg, err := config.FromEnv()
//	if err != nil {
//		return err
//	}
//	fileCfg, err := config.FromYAMLFile("config/assets.yml")
//	if err != nil {
//		return err
//	}
//	lookup := config.Chain(envCfg, fileCfg)
//
//	storage := config.String(lookup, config.KeyStorage)
//	whiny := config.Bool(config.String(lookup, config.KeyWhinyThumbnails))
//
// # Environment
//
// FromEnv maps every known key to an upper-cased environment variable with dots
// replaced by underscores: "assets.s3.bucket" is read from ASSETS_S3_BUCKET.
package config
