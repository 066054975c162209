package asset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/assetkit/pkg/asset"
	"github.com/dmitrymomot/assetkit/pkg/assettype"
)

func TestAsset_BasenameExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fileName string
		basename string
		ext      string
	}{
		{"holiday.JPG", "holiday", "jpg"},
		{"archive.tar.gz", "archive.tar", "gz"},
		{"README", "README", ""},
		{".htaccess", ".htaccess", "htaccess"},
		{`C:\Users\me\report.pdf`, "report", "pdf"},
		{"uploads/2024/photo.png", "photo", "png"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			t.Parallel()
			a := &asset.Asset{FileName: tt.fileName}
			require.Equal(t, tt.basename, a.Basename())
			require.Equal(t, tt.ext, a.Extension())
		})
	}
}

func TestAsset_AssignTitle(t *testing.T) {
	t.Parallel()

	a := asset.New("  summer   party.jpg")
	a.AssignTitle()
	require.Equal(t, "summer party", a.Title)

	a.Title = "Kept"
	a.AssignTitle()
	require.Equal(t, "Kept", a.Title)

	a.Title = "   "
	a.FileName = "beach.png"
	a.AssignTitle()
	require.Equal(t, "beach", a.Title)
}

func TestAsset_Sanitize(t *testing.T) {
	t.Parallel()

	a := &asset.Asset{
		Title:   "<script>x</script>My   photo",
		Caption: `<p onclick="x()">Taken <em>here</em></p>`,
	}
	a.Sanitize()
	require.Equal(t, "My photo", a.Title)
	require.Equal(t, "<p>Taken <em>here</em></p>", a.Caption)
}

func TestAsset_Type(t *testing.T) {
	t.Parallel()

	reg := assettype.NewDefault()

	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", assettype.Image},
		{"video/mp4", assettype.Video},
		{"application/pdf", assettype.PDF},
		{"text/plain", assettype.Other},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()
			a := &asset.Asset{ContentType: tt.contentType}
			require.Equal(t, tt.want, a.Type(reg))
			require.True(t, a.Is(reg, tt.want))
		})
	}

	swf := &asset.Asset{ContentType: "application/x-shockwave-flash"}
	require.True(t, swf.Is(reg, assettype.Movie))
	require.True(t, swf.Is(reg, assettype.SWF))
	require.False(t, swf.Is(reg, assettype.Other))
}

func TestNew(t *testing.T) {
	t.Parallel()

	a := asset.New("a.png")
	b := asset.New("a.png")
	require.NotEqual(t, a.ID, b.ID)
	require.False(t, a.CreatedAt.IsZero())
	require.Equal(t, a.CreatedAt, a.UpdatedAt)
}
