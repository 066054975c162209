package attachment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/assetkit/pkg/attachment"
	"github.com/dmitrymomot/assetkit/pkg/config"
	"github.com/dmitrymomot/assetkit/pkg/storage"
)

func TestValidationRules(t *testing.T) {
	t.Parallel()

	t.Run("always requires a file", func(t *testing.T) {
		t.Parallel()
		rules, err := attachment.ValidationRules(nil)
		require.NoError(t, err)
		require.Len(t, rules, 1)
		require.Error(t, storage.Validate(0, "image/png", rules...))
		require.NoError(t, storage.Validate(1, "anything/else", rules...))
	})

	t.Run("content types and size", func(t *testing.T) {
		t.Parallel()
		rules, err := attachment.ValidationRules(config.Map{
			config.KeyContentTypes: "image/png, application/pdf",
			config.KeyMaxAssetSize: "2",
		})
		require.NoError(t, err)
		require.Len(t, rules, 3)

		require.NoError(t, storage.Validate(2<<20, "image/png", rules...))
		require.Error(t, storage.Validate(2<<20+1, "image/png", rules...))
		require.Error(t, storage.Validate(10, "video/mp4", rules...))
	})

	t.Run("skip filetype validation", func(t *testing.T) {
		t.Parallel()
		rules, err := attachment.ValidationRules(config.Map{
			config.KeyContentTypes:           "image/png",
			config.KeySkipFiletypeValidation: "false",
		})
		require.NoError(t, err)
		require.NoError(t, storage.Validate(10, "video/mp4", rules...))
	})

	t.Run("invalid size", func(t *testing.T) {
		t.Parallel()
		for _, v := range []string{"ten", "-1", "9000000000000"} {
			_, err := attachment.ValidationRules(config.Map{config.KeyMaxAssetSize: v})
			require.ErrorIs(t, err, attachment.ErrInvalidMaxSize, v)
		}
	})

	t.Run("largest size still accepts small files", func(t *testing.T) {
		t.Parallel()
		rules, err := attachment.ValidationRules(config.Map{config.KeyMaxAssetSize: "8796093022207"})
		require.NoError(t, err)
		require.NoError(t, storage.Validate(1, "image/png", rules...))
	})
}
