package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewS3(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid",
			cfg:  Config{Bucket: "assets", AccessKey: "key", SecretKey: "secret"},
		},
		{
			name:    "missing bucket",
			cfg:     Config{AccessKey: "key", SecretKey: "secret"},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "missing credentials",
			cfg:     Config{Bucket: "assets"},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewS3(tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.Equal(t, DefaultRegion, s.cfg.Region)
			require.Equal(t, ACLPublicRead, s.cfg.DefaultACL)
		})
	}
}

func TestS3Storage_PublicURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "aws virtual host",
			cfg:  Config{Bucket: "assets", Region: "eu-west-1"},
			want: "https://assets.s3.eu-west-1.amazonaws.com/a/b.png",
		},
		{
			name: "custom endpoint path style",
			cfg:  Config{Bucket: "assets", Endpoint: "http://localhost:9000/", PathStyle: true},
			want: "http://localhost:9000/assets/a/b.png",
		},
		{
			name: "custom endpoint",
			cfg:  Config{Bucket: "assets", Endpoint: "https://cdn.example.com"},
			want: "https://cdn.example.com/a/b.png",
		},
		{
			name: "public url wins",
			cfg:  Config{Bucket: "assets", Endpoint: "http://localhost:9000", PublicURL: "https://static.example.com/"},
			want: "https://static.example.com/a/b.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := tt.cfg
			cfg.AccessKey, cfg.SecretKey = "key", "secret"
			s, err := NewS3(cfg)
			require.NoError(t, err)
			require.Equal(t, tt.want, s.PublicURL("a/b.png"))
		})
	}
}

func TestS3Storage_URL(t *testing.T) {
	t.Parallel()

	newStore := func(t *testing.T, acl ACL) *S3Storage {
		t.Helper()
		s, err := NewS3(Config{
			Bucket:     "assets",
			AccessKey:  "key",
			SecretKey:  "secret",
			Endpoint:   "http://localhost:9000",
			PathStyle:  true,
			DefaultACL: acl,
		})
		require.NoError(t, err)
		return s
	}

	t.Run("public by default", func(t *testing.T) {
		t.Parallel()
		s := newStore(t, "")
		u, err := s.URL(context.Background(), "a.png")
		require.NoError(t, err)
		require.Equal(t, "http://localhost:9000/assets/a.png", u)
	})

	t.Run("signed on request", func(t *testing.T) {
		t.Parallel()
		s := newStore(t, "")
		u, err := s.URL(context.Background(), "a.png", WithSigned(time.Hour))
		require.NoError(t, err)

		parsed, err := url.Parse(u)
		require.NoError(t, err)
		require.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))
		require.Equal(t, "3600", parsed.Query().Get("X-Amz-Expires"))
	})

	t.Run("private acl signs", func(t *testing.T) {
		t.Parallel()
		s := newStore(t, ACLPrivate)
		u, err := s.URL(context.Background(), "a.png")
		require.NoError(t, err)
		require.Contains(t, u, "X-Amz-Signature")
	})

	t.Run("download disposition", func(t *testing.T) {
		t.Parallel()
		s := newStore(t, "")
		u, err := s.URL(context.Background(), "a.pdf", WithDownload("report.pdf"))
		require.NoError(t, err)
		require.True(t, strings.Contains(u, "response-content-disposition"))
	})
}

func TestResolveKey(t *testing.T) {
	t.Parallel()

	t.Run("explicit key is cleaned", func(t *testing.T) {
		t.Parallel()
		key, err := resolveKey(&putOptions{key: "/assets//1/./original/a.png"}, "image/png")
		require.NoError(t, err)
		require.Equal(t, "assets/1/original/a.png", key)
	})

	t.Run("explicit key escaping root", func(t *testing.T) {
		t.Parallel()
		_, err := resolveKey(&putOptions{key: "assets/../../etc/passwd"}, "")
		require.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("generated with prefix", func(t *testing.T) {
		t.Parallel()
		key, err := resolveKey(&putOptions{prefix: "uploads"}, "image/png")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(key, "uploads/"))
		require.True(t, strings.HasSuffix(key, ".png"))
	})

	t.Run("unknown type falls back to bin", func(t *testing.T) {
		t.Parallel()
		key, err := resolveKey(&putOptions{}, "application/x-unknown-thing")
		require.NoError(t, err)
		require.True(t, strings.HasSuffix(key, ".bin"))
		require.NotContains(t, key, "/")
	})
}

func TestCleanKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "a/b.png", want: "a/b.png"},
		{key: "/a/b.png", want: "a/b.png"},
		{key: `a\b.png`, want: "a/b.png"},
		{key: "", wantErr: true},
		{key: "   ", wantErr: true},
		{key: "/", wantErr: true},
		{key: "../a", wantErr: true},
		{key: "a/../../b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			got, err := cleanKey(tt.key)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizePathSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"uploads", "uploads"},
		{"/uploads/", "uploads"},
		{"../etc", "_etc"},
		{"my files", "my_files"},
		{"a/b", "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, sanitizePathSegment(tt.in))
		})
	}
}
