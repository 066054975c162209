//go:build integration

package assetstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/assetkit/pkg/asset"
	"github.com/dmitrymomot/assetkit/pkg/assetstore"
	"github.com/dmitrymomot/assetkit/pkg/assettype"
	"github.com/dmitrymomot/assetkit/pkg/logger"
)

// Requires a disposable PostgreSQL database in ASSETS_DATABASE_URL.
// Every test truncates the assets table.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("ASSETS_DATABASE_URL") == "" {
		t.Skip("ASSETS_DATABASE_URL is not set")
	}

	cfg, err := assetstore.ConfigFromEnv()
	require.NoError(t, err)
	cfg.RetryAttempts = 1

	ctx := context.Background()
	pool, err := assetstore.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, assetstore.Migrate(ctx, pool, cfg.MigrationsTable, logger.NewNope()))
	_, err = pool.Exec(ctx, "TRUNCATE assets")
	require.NoError(t, err)

	return pool
}

func createAsset(t *testing.T, s *assetstore.Store, name, contentType string, at time.Time) *asset.Asset {
	t.Helper()

	a := asset.New(name)
	a.ContentType = contentType
	a.FileSize = 42
	a.CreatedAt = at
	require.NoError(t, s.Create(context.Background(), a))
	return a
}

func TestStoreLifecycle(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	s := assetstore.New(pool, assettype.NewDefault())

	a := createAsset(t, s, "Company Logo.png", "image/png", time.Now())
	require.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "Company Logo", a.Title)

	got, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.FileName, got.FileName)
	assert.Equal(t, "image/png", got.ContentType)
	assert.False(t, got.Furniture)

	got.Caption = "header"
	got.Furniture = true
	require.NoError(t, s.Update(ctx, got))

	got, err = s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "header", got.Caption)
	assert.True(t, got.Furniture)

	require.NoError(t, s.Delete(ctx, a.ID))
	_, err = s.Get(ctx, a.ID)
	require.ErrorIs(t, err, assetstore.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, a.ID), assetstore.ErrNotFound)
}

func TestStoreFind(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	s := assetstore.New(pool, assettype.NewDefault())

	base := time.Now().Add(-time.Hour)
	createAsset(t, s, "logo.png", "image/png", base)
	createAsset(t, s, "intro.mp4", "video/mp4", base.Add(time.Minute))
	createAsset(t, s, "manual.pdf", "application/pdf", base.Add(2*time.Minute))
	createAsset(t, s, "notes.txt", "text/plain", base.Add(3*time.Minute))

	// Pre-furniture rows carry NULL.
	_, err := pool.Exec(ctx, "UPDATE assets SET furniture = NULL WHERE asset_file_name = 'notes.txt'")
	require.NoError(t, err)

	page, err := s.Find(ctx, assetstore.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	require.Len(t, page.Items, 4)
	assert.Equal(t, "notes.txt", page.Items[0].FileName)

	page, err = s.Find(ctx, assetstore.Query{Search: "MANUAL"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "manual.pdf", page.Items[0].FileName)

	page, err = s.OfType(ctx, assettype.Movie, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "intro.mp4", page.Items[0].FileName)

	page, err = s.OfType(ctx, assettype.Other, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	page, err = s.NotOfType(ctx, assettype.Image, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)

	no := false
	page, err = s.Find(ctx, assetstore.Query{Furniture: &no})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)

	page, err = s.Find(ctx, assetstore.Query{PerPage: 3, Page: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "logo.png", page.Items[0].FileName)
	assert.Equal(t, 2, page.Pages())
}

func TestStoreWithTxRollback(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	s := assetstore.New(pool, assettype.NewDefault())

	id := uuid.New()
	err := assetstore.WithTx(ctx, pool, func(tx pgx.Tx) error {
		a := asset.New("draft.png")
		a.ID = id
		a.ContentType = "image/png"
		if err := s.WithTx(tx).Create(ctx, a); err != nil {
			return err
		}
		return assetstore.ErrInvalidQuery
	})
	require.ErrorIs(t, err, assetstore.ErrInvalidQuery)

	_, err = s.Get(ctx, id)
	require.ErrorIs(t, err, assetstore.ErrNotFound)
}
