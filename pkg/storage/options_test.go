package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPutOptions(t *testing.T) {
	t.Parallel()

	o := newPutOptions(ACLPublicRead, []Option{
		WithKey("assets/1/original/a.png"),
		WithPrefix("ignored"),
		WithContentType("image/png"),
		WithACL(ACLPrivate),
		WithValidation(NotEmpty()),
		WithValidation(MaxSize(10)),
	})

	require.Equal(t, "assets/1/original/a.png", o.key)
	require.Equal(t, "ignored", o.prefix)
	require.Equal(t, "image/png", o.contentType)
	require.Equal(t, ACLPrivate, o.acl)
	require.Len(t, o.rules, 2)
}

func TestPutOptions_DefaultACL(t *testing.T) {
	t.Parallel()
	o := newPutOptions(ACLPublicRead, nil)
	require.Equal(t, ACLPublicRead, o.acl)
}

func TestURLOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		o := newURLOptions(nil)
		require.Equal(t, DefaultURLExpiry, o.expiry)
		require.False(t, o.signed)
	})

	t.Run("signed with expiry", func(t *testing.T) {
		t.Parallel()
		o := newURLOptions([]URLOption{WithSigned(time.Hour)})
		require.True(t, o.signed)
		require.Equal(t, time.Hour, o.expiry)
	})

	t.Run("signed zero expiry keeps default", func(t *testing.T) {
		t.Parallel()
		o := newURLOptions([]URLOption{WithSigned(0)})
		require.Equal(t, DefaultURLExpiry, o.expiry)
	})

	t.Run("download implies signed", func(t *testing.T) {
		t.Parallel()
		o := newURLOptions([]URLOption{WithDownload("report.pdf")})
		require.True(t, o.signed)
		require.Equal(t, "report.pdf", o.filename)
	})
}
