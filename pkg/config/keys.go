package config

// Configuration keys consumed by the asset packages.
const (
	KeyStorage                = "assets.storage"
	KeyPath                   = "assets.path"
	KeyURL                    = "assets.url"
	KeyS3Bucket               = "assets.s3.bucket"
	KeyS3Key                  = "assets.s3.key"
	KeyS3Secret               = "assets.s3.secret"
	KeyS3Region               = "assets.s3.region"
	KeyS3Endpoint             = "assets.s3.endpoint"
	KeyS3PathStyle            = "assets.s3.path_style"
	KeyS3HostAlias            = "assets.s3.host_alias"
	KeyCloudFilesContainer    = "assets.cloud_files.container"
	KeyCloudFilesUsername     = "assets.cloud_files.username"
	KeyCloudFilesAPIKey       = "assets.cloud_files.api_key"
	KeyCloudFilesServiceNet   = "assets.cloud_files.servicenet"
	KeyWhinyThumbnails        = "assets.whiny_thumbnails"
	KeyAdditionalThumbnails   = "assets.additional_thumbnails"
	KeyContentTypes           = "assets.content_types"
	KeyMaxAssetSize           = "assets.max_asset_size"
	KeySkipFiletypeValidation = "assets.skip_filetype_validation"
)
