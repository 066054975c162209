package attachment

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dmitrymomot/assetkit/pkg/config"
	"github.com/dmitrymomot/assetkit/pkg/storage"
)

// maxAssetSizeMB is the largest megabyte limit that fits in bytes as int64.
const maxAssetSizeMB = math.MaxInt64 >> 20

// ValidationRules returns the upload rules configured in lookup.
//
// An upload must never be empty. assets.content_types restricts MIME types
// unless assets.skip_filetype_validation is set to any value.
// assets.max_asset_size limits the size in megabytes.
func ValidationRules(lookup config.Lookup) ([]storage.ValidationRule, error) {
	if lookup == nil {
		lookup = config.Map{}
	}
	rules := []storage.ValidationRule{storage.NotEmpty()}

	if types := config.List(config.String(lookup, config.KeyContentTypes)); len(types) > 0 &&
		!config.Has(lookup, config.KeySkipFiletypeValidation) {
		rules = append(rules, storage.AllowedTypes(types...))
	}

	if v := config.String(lookup, config.KeyMaxAssetSize); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil || mb < 0 || mb > maxAssetSizeMB {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMaxSize, v)
		}
		rules = append(rules, storage.MaxSize(mb<<20))
	}

	return rules, nil
}
