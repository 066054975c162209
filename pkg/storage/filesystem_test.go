package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileSystem_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	s := NewFileSystem(FileSystemConfig{Root: root, BaseURL: "https://example.com/files/"})

	info, err := s.Put(ctx, bytes.NewReader(pngHeader), int64(len(pngHeader)),
		WithKey("assets/1/original/a.png"),
	)
	require.NoError(t, err)
	require.Equal(t, "assets/1/original/a.png", info.Key)
	require.Equal(t, "image/png", info.ContentType)
	require.Equal(t, int64(len(pngHeader)), info.Size)

	_, err = os.Stat(filepath.Join(root, "assets", "1", "original", "a.png"))
	require.NoError(t, err)

	ok, err := s.Exists(ctx, info.Key)
	require.NoError(t, err)
	require.True(t, ok)

	rc, err := s.Get(ctx, info.Key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, pngHeader, data)

	u, err := s.URL(ctx, info.Key, WithSigned(time.Hour))
	require.NoError(t, err)
	require.Equal(t, "https://example.com/files/assets/1/original/a.png", u)

	require.NoError(t, s.Delete(ctx, info.Key))
	ok, err = s.Exists(ctx, info.Key)
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting again is not an error.
	require.NoError(t, s.Delete(ctx, info.Key))
}

func TestFileSystem_GeneratedKey(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s := NewFileSystem(FileSystemConfig{Root: root})

	info, err := s.Put(context.Background(), bytes.NewReader(pdfData), int64(len(pdfData)), WithPrefix("docs"))
	require.NoError(t, err)
	require.Equal(t, "application/pdf", info.ContentType)
	require.Regexp(t, `^docs/[0-9a-f-]{36}\.pdf$`, info.Key)
	require.Equal(t, "/"+info.Key, s.PublicURL(info.Key))
}

func TestFileSystem_AbsoluteKeyWithoutRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := filepath.ToSlash(filepath.Join(dir, "public", "a.pdf"))
	s := NewFileSystem(FileSystemConfig{})

	_, err := s.Put(context.Background(), bytes.NewReader(pdfData), int64(len(pdfData)),
		WithKey(key), WithContentType("application/pdf"),
	)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "public", "a.pdf"))
	require.NoError(t, err)
}

func TestFileSystem_Validation(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s := NewFileSystem(FileSystemConfig{Root: root})

	_, err := s.Put(context.Background(), bytes.NewReader(pdfData), int64(len(pdfData)),
		WithKey("a.pdf"),
		WithValidation(AllowedTypes("image/*")),
	)
	var verr *FileValidationError
	require.ErrorAs(t, err, &verr)

	_, statErr := os.Stat(filepath.Join(root, "a.pdf"))
	require.True(t, os.IsNotExist(statErr))
}

func TestFileSystem_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewFileSystem(FileSystemConfig{Root: t.TempDir()})

	_, err := s.Get(ctx, "missing.png")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, "../outside")
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = s.Put(ctx, bytes.NewReader(pngHeader), 1, WithKey("../x.png"))
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = s.URL(ctx, "")
	require.ErrorIs(t, err, ErrInvalidKey)
}
