package attachment

import "strings"

// Backend names a storage kind.
type Backend string

const (
	Filesystem Backend = "filesystem"
	S3         Backend = "s3"
	CloudFiles Backend = "cloudFiles"
)

// ParseBackend maps a selector to a Backend. Matching is case-insensitive and
// ignores surrounding whitespace. An empty selector means Filesystem.
func ParseBackend(selector string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case "", "filesystem":
		return Filesystem, nil
	case "s3":
		return S3, nil
	case "cloudfiles", "cloud_files", "cloud_file":
		return CloudFiles, nil
	default:
		return "", &UnknownBackendError{Selector: selector}
	}
}

func (b Backend) String() string {
	return string(b)
}
