package gormscope_test

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmitrymomot/assetkit/pkg/asset"
	"github.com/dmitrymomot/assetkit/pkg/assetstore"
	"github.com/dmitrymomot/assetkit/pkg/assettype"
	"github.com/dmitrymomot/assetkit/pkg/gormscope"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=assets dbname=assets sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func render(t *testing.T, db *gorm.DB, scopes ...gormscope.Scope) (string, []any, error) {
	t.Helper()

	var records []gormscope.Record
	res := db.Scopes(scopes...).Find(&records)
	return res.Statement.SQL.String(), res.Statement.Vars, res.Error
}

func TestTypeScopes(t *testing.T) {
	t.Parallel()

	db := newDryRunDB(t)
	reg := assettype.NewDefault()

	t.Run("of type", func(t *testing.T) {
		t.Parallel()

		query, vars, err := render(t, db, gormscope.OfType(reg, assettype.PDF))
		require.NoError(t, err)
		assert.Contains(t, query, `FROM "assets"`)
		assert.Contains(t, query, "asset_content_type IN ($1)")
		assert.Equal(t, []any{"application/pdf"}, vars)
	})

	t.Run("not of type", func(t *testing.T) {
		t.Parallel()

		query, vars, err := render(t, db, gormscope.NotOfType(reg, assettype.PDF))
		require.NoError(t, err)
		assert.Contains(t, query, "asset_content_type NOT IN ($1)")
		assert.Equal(t, []any{"application/pdf"}, vars)
	})

	t.Run("movie alias covers video and swf", func(t *testing.T) {
		t.Parallel()

		_, vars, err := render(t, db, gormscope.OfType(reg, assettype.Movie))
		require.NoError(t, err)
		assert.Contains(t, vars, "application/x-shockwave-flash")
		assert.Contains(t, vars, "video/mp4")
	})

	t.Run("of types", func(t *testing.T) {
		t.Parallel()

		query, vars, err := render(t, db, gormscope.OfTypes(reg, assettype.PDF, assettype.SWF))
		require.NoError(t, err)
		assert.Contains(t, query, "asset_content_type IN ($1)")
		assert.Contains(t, query, " OR ")
		assert.Contains(t, query, "asset_content_type IN ($2)")
		assert.Equal(t, []any{"application/pdf", "application/x-shockwave-flash"}, vars)
	})

	t.Run("no types adds nothing", func(t *testing.T) {
		t.Parallel()

		query, vars, err := render(t, db, gormscope.OfTypes(reg))
		require.NoError(t, err)
		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, vars)
	})

	t.Run("unknown type fails the query", func(t *testing.T) {
		t.Parallel()

		_, _, err := render(t, db, gormscope.OfType(reg, "hologram"))
		require.ErrorIs(t, err, assetstore.ErrInvalidQuery)
		require.ErrorIs(t, err, assettype.ErrUnknownType)
	})
}

func TestFilterScopes(t *testing.T) {
	t.Parallel()

	db := newDryRunDB(t)

	t.Run("furniture", func(t *testing.T) {
		t.Parallel()

		query, _, err := render(t, db, gormscope.Furniture())
		require.NoError(t, err)
		assert.Contains(t, query, "furniture = TRUE")
	})

	t.Run("not furniture keeps null rows", func(t *testing.T) {
		t.Parallel()

		query, _, err := render(t, db, gormscope.NotFurniture())
		require.NoError(t, err)
		assert.Contains(t, query, "furniture = FALSE OR furniture IS NULL")
	})

	t.Run("search", func(t *testing.T) {
		t.Parallel()

		query, vars, err := render(t, db, gormscope.Search(" Logo_1 "))
		require.NoError(t, err)
		assert.Contains(t, query, "LOWER(asset_file_name) LIKE $1")
		assert.Contains(t, query, "LOWER(caption) LIKE $3")
		assert.Equal(t, []any{`%logo\_1%`, `%logo\_1%`, `%logo\_1%`}, vars)
	})

	t.Run("blank search adds nothing", func(t *testing.T) {
		t.Parallel()

		query, _, err := render(t, db, gormscope.Search("   "))
		require.NoError(t, err)
		assert.NotContains(t, query, "WHERE")
	})

	t.Run("newest first and paged", func(t *testing.T) {
		t.Parallel()

		query, _, err := render(t, db, gormscope.NewestFirst(), gormscope.Paged(3, 20))
		require.NoError(t, err)
		assert.Contains(t, query, "ORDER BY created_at DESC")
		assert.Contains(t, query, "LIMIT")
		assert.Contains(t, query, "OFFSET")
	})
}

func TestPagedOffsets(t *testing.T) {
	t.Parallel()

	db := newDryRunDB(t)

	tests := []struct {
		name       string
		page       int
		perPage    int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, assetstore.DefaultPerPage, 0},
		{"second page", 2, 20, 20, 20},
		{"capped", 1, 5000, assetstore.MaxPerPage, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var records []gormscope.Record
			stmt := db.Scopes(gormscope.Paged(tt.page, tt.perPage)).Find(&records).Statement

			limit, ok := stmt.Clauses["LIMIT"].Expression.(clause.Limit)
			require.True(t, ok)
			require.NotNil(t, limit.Limit)
			assert.Equal(t, tt.wantLimit, *limit.Limit)
			assert.Equal(t, tt.wantOffset, limit.Offset)
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	t.Parallel()

	by := uuid.New()
	a := asset.New("logo.png")
	a.ContentType = "image/png"
	a.Furniture = true
	a.CreatedBy = &by

	r := gormscope.FromAsset(a)
	assert.Equal(t, sql.NullBool{Bool: true, Valid: true}, r.Furniture)
	assert.Equal(t, a, r.Asset())

	r.Furniture = sql.NullBool{}
	assert.False(t, r.Asset().Furniture)

	items := gormscope.Assets([]gormscope.Record{r, r})
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[1].ID)
}
