package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystemConfig configures local disk storage.
type FileSystemConfig struct {
	// Root is the directory keys are resolved against. When empty, absolute
	// keys are used as-is and relative keys resolve against the working directory.
	Root string

	// BaseURL is prepended to keys by URL and PublicURL. Defaults to "/".
	BaseURL string

	// DirMode and FileMode default to 0o755 and 0o644.
	DirMode  fs.FileMode
	FileMode fs.FileMode
}

// FileSystem implements Storage on the local disk.
type FileSystem struct {
	cfg FileSystemConfig
}

// NewFileSystem creates a filesystem storage.
func NewFileSystem(cfg FileSystemConfig) *FileSystem {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/"
	}
	if cfg.DirMode == 0 {
		cfg.DirMode = 0o755
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0o644
	}
	return &FileSystem{cfg: cfg}
}

// Put writes r to the file addressed by the key. Parent directories are
// created and a partially written file is removed.
func (s *FileSystem) Put(_ context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	u, err := prepareUpload(r, size, ACLPublicRead, opts)
	if err != nil {
		return nil, err
	}
	full, err := s.fullPath(u.rawKey, u.key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(full), s.cfg.DirMode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, s.cfg.FileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	written, err := io.Copy(f, u.body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return u.info(written), nil
}

// Get opens the file addressed by key.
func (s *FileSystem) Get(_ context.Context, key string) (io.ReadCloser, error) {
	full, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, mapFSError(err, ErrNotFound)
	}
	return f, nil
}

// Delete removes the file addressed by key. Missing files are ignored.
func (s *FileSystem) Delete(_ context.Context, key string) error {
	full, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return mapFSError(err, ErrDeleteFailed)
	}
	return nil
}

// Exists reports whether a regular file is stored under key.
func (s *FileSystem) Exists(_ context.Context, key string) (bool, error) {
	full, err := s.path(key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	switch {
	case err == nil:
		return info.Mode().IsRegular(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, mapFSError(err, ErrNotFound)
	}
}

// URL returns BaseURL joined with key. Local files cannot be signed, so
// signing options are ignored.
func (s *FileSystem) URL(_ context.Context, key string, _ ...URLOption) (string, error) {
	if _, err := cleanKey(key); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// PublicURL returns BaseURL joined with key.
func (s *FileSystem) PublicURL(key string) string {
	return strings.TrimSuffix(s.cfg.BaseURL, "/") + "/" + strings.TrimPrefix(key, "/")
}

func (s *FileSystem) path(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return s.fullPath(key, cleaned)
}

// fullPath maps a cleaned key onto the disk. raw is the key as given, used to
// keep absolute keys absolute when no root is configured.
func (s *FileSystem) fullPath(raw, cleaned string) (string, error) {
	if cleaned == "" {
		return "", ErrInvalidKey
	}
	rel := filepath.FromSlash(cleaned)
	switch {
	case s.cfg.Root != "":
		return filepath.Join(s.cfg.Root, rel), nil
	case strings.HasPrefix(raw, "/"):
		return string(filepath.Separator) + rel, nil
	default:
		return rel, nil
	}
}

func mapFSError(err, fallback error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	default:
		return fmt.Errorf("%w: %v", fallback, err)
	}
}

var (
	_ Storage     = (*FileSystem)(nil)
	_ PublicURLer = (*FileSystem)(nil)
)
