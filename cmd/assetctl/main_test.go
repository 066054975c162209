package main

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()

	if env == nil {
		env = map[string]string{}
	}
	cmd := newRootCommandWith(&cli{env: env})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, yaml.Unmarshal([]byte(out), &v), out)
	return v
}

func TestClassifyCommand(t *testing.T) {
	t.Parallel()

	pdf := filepath.Join(t.TempDir(), "manual.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF"), 0o600))

	out, err := run(t, nil, "classify", "image/png", "application/x-shockwave-flash", "VIDEO/MP4", "text/plain", pdf)
	require.NoError(t, err)

	got := decode[[]classification](t, out)
	require.Equal(t, []classification{
		{Input: "image/png", MIME: "image/png", Type: "image"},
		{Input: "application/x-shockwave-flash", MIME: "application/x-shockwave-flash", Type: "swf"},
		{Input: "VIDEO/MP4", MIME: "VIDEO/MP4", Type: "video"},
		{Input: "text/plain", MIME: "text/plain", Type: "other"},
		{Input: pdf, MIME: "application/pdf", Type: "pdf"},
	}, got)
}

func TestClassifyCommand_RequiresArgs(t *testing.T) {
	t.Parallel()

	_, err := run(t, nil, "classify")
	require.Error(t, err)
}

func TestTypesCommand(t *testing.T) {
	t.Parallel()

	out, err := run(t, nil, "types")
	require.NoError(t, err)

	got := decode[[]typeInfo](t, out)
	names := make([]string, 0, len(got))
	for _, ti := range got {
		names = append(names, ti.Name)
	}
	require.Equal(t, []string{"image", "video", "audio", "swf", "pdf", "movie", "other"}, names)
	require.Contains(t, got[5].MIMETypes, "application/x-shockwave-flash")
	require.Contains(t, got[5].MIMETypes, "video/mp4")
	require.Empty(t, got[6].MIMETypes)
}

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"ASSETS_S3_BUCKET": "media",
		"ASSETS_S3_KEY":    "AKIAEXAMPLE",
		"ASSETS_S3_SECRET": "secret",
	}

	t.Run("filesystem by default", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, env, "config")
		require.NoError(t, err)

		got := decode[configView](t, out)
		require.Equal(t, "filesystem", got.Storage)
		require.Equal(t, ":root/public/:class/:id/:basename:no_original_style.:extension", got.Path)
		require.Equal(t, []string{"thumbnail"}, got.Processors)
	})

	t.Run("explicit backend masks secrets", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, env, "config", "--backend", "s3")
		require.NoError(t, err)

		got := decode[configView](t, out)
		require.Equal(t, "s3", got.Storage)
		require.Equal(t, "media", got.Bucket)
		require.Equal(t, "********", got.Credentials["secretAccessKey"])
		require.NotContains(t, out, "AKIAEXAMPLE")
	})

	t.Run("show secrets", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, env, "config", "-b", "s3", "--show-secrets")
		require.NoError(t, err)
		require.Equal(t, "AKIAEXAMPLE", decode[configView](t, out).Credentials["accessKeyId"])
	})

	t.Run("yaml file wins over environment", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "assets.yaml")
		require.NoError(t, os.WriteFile(file, []byte("assets:\n  storage: s3\n  s3:\n    bucket: archive\n"), 0o600))

		out, err := run(t, env, "--config", file, "config")
		require.NoError(t, err)

		got := decode[configView](t, out)
		require.Equal(t, "s3", got.Storage)
		require.Equal(t, "archive", got.Bucket)
	})

	t.Run("unknown backend fails", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, map[string]string{"ASSETS_STORAGE": "ftp"}, "config")
		require.ErrorContains(t, err, "ftp")
	})
}

func TestStylesCommand(t *testing.T) {
	t.Parallel()

	out, err := run(t, map[string]string{"ASSETS_ADDITIONAL_THUMBNAILS": "banner=600x120#"}, "styles")
	require.NoError(t, err)

	got := decode[[]styleOption](t, out)
	values := make([]string, 0, len(got))
	for _, o := range got {
		values = append(values, o.Value)
	}
	require.Equal(t, []string{"original", "banner", "icon", "thumbnail"}, values)
	require.Equal(t, "banner: 600x120#", got[1].Label)
}

func TestProbeCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	img := filepath.Join(dir, "photo.png")
	require.NoError(t, imaging.Save(imaging.New(64, 32, color.NRGBA{G: 255, A: 255}), img))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("just some notes"), 0o600))

	out, err := run(t, nil, "probe", img, txt)
	require.NoError(t, err)

	got := decode[[]probeResult](t, out)
	require.Len(t, got, 2)
	require.Equal(t, "image", got[0].Type)
	require.Equal(t, 64, got[0].Width)
	require.Equal(t, 32, got[0].Height)
	require.Empty(t, got[0].Icon)
	require.Equal(t, "other", got[1].Type)
	require.Zero(t, got[1].Width)
	require.Equal(t, "/images/assets/doc_icon.png", got[1].Icon)

	_, err = run(t, nil, "probe", filepath.Join(dir, "missing.png"))
	require.ErrorContains(t, err, "missing.png")
}

func TestHealthCommand(t *testing.T) {
	t.Parallel()

	out, err := run(t, nil, "health")
	require.NoError(t, err)

	var got struct {
		Status string `yaml:"status"`
		Checks map[string]struct {
			Status string `yaml:"status"`
		} `yaml:"checks"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Equal(t, "healthy", got.Status)
	require.Equal(t, "healthy", got.Checks["storage"].Status)
}

func TestHealthCommand_CloudFilesUnsupported(t *testing.T) {
	t.Parallel()

	out, err := run(t, map[string]string{"ASSETS_STORAGE": "cloudFiles"}, "health")
	require.Error(t, err)
	require.Contains(t, out, "unhealthy")
}
