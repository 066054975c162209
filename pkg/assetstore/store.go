package assetstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/assetkit/pkg/asset"
	"github.com/dmitrymomot/assetkit/pkg/assettype"
	"github.com/dmitrymomot/assetkit/pkg/logger"
)

// Page is one page of a listing.
type Page struct {
	Items   []*asset.Asset
	Total   int64
	Page    int
	PerPage int
}

// Pages returns the number of pages.
func (p Page) Pages() int {
	if p.PerPage <= 0 {
		return 0
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Store persists asset records.
type Store struct {
	db       DBTX
	registry *assettype.Registry
	logger   *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store on a pool or transaction.
func New(db DBTX, reg *assettype.Registry, opts ...StoreOption) *Store {
	if reg == nil {
		reg = assettype.NewDefault()
	}
	s := &Store{db: db, registry: reg, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTx returns a Store bound to tx.
func (s *Store) WithTx(tx pgx.Tx) *Store {
	return &Store{db: tx, registry: s.registry, logger: s.logger}
}

// Create inserts a. The title is assigned from the file name when blank
// and missing IDs and timestamps are filled in.
func (s *Store) Create(ctx context.Context, a *asset.Asset) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	a.AssignTitle()

	_, err := s.db.Exec(ctx, `INSERT INTO assets (
		id, title, caption, asset_file_name, asset_content_type, asset_file_size,
		furniture, created_by, updated_by, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Title, a.Caption, a.FileName, a.ContentType, a.FileSize,
		a.Furniture, a.CreatedBy, a.UpdatedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("assetstore: create: %w", err)
	}
	s.logger.DebugContext(logger.WithAssetID(ctx, a.ID.String()), "asset created")
	return nil
}

// Get loads an asset by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	row := s.db.QueryRow(ctx, "SELECT "+columns+" FROM "+table+" WHERE id = $1", id)
	a, err := scanAsset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("assetstore: get: %w", err)
	}
	return a, nil
}

// Update saves all mutable fields of a.
func (s *Store) Update(ctx context.Context, a *asset.Asset) error {
	a.UpdatedAt = time.Now().UTC()
	a.AssignTitle()

	tag, err := s.db.Exec(ctx, `UPDATE assets SET
		title = $2, caption = $3, asset_file_name = $4, asset_content_type = $5,
		asset_file_size = $6, furniture = $7, updated_by = $8, updated_at = $9
	WHERE id = $1`,
		a.ID, a.Title, a.Caption, a.FileName, a.ContentType,
		a.FileSize, a.Furniture, a.UpdatedBy, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("assetstore: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an asset record. Stored files are removed by
// asset.Attachment.Delete.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM assets WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("assetstore: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Find returns a page of assets matching q, newest first.
func (s *Store) Find(ctx context.Context, q Query) (Page, error) {
	stmt, err := BuildFind(s.registry, q)
	if err != nil {
		return Page{}, err
	}

	var total int64
	if err := s.db.QueryRow(ctx, stmt.Count, stmt.CountArgs...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("assetstore: count: %w", err)
	}

	rows, err := s.db.Query(ctx, stmt.Select, stmt.Args...)
	if err != nil {
		return Page{}, fmt.Errorf("assetstore: find: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*asset.Asset, error) {
		return scanAsset(row)
	})
	if err != nil {
		return Page{}, fmt.Errorf("assetstore: find: %w", err)
	}

	return Page{Items: items, Total: total, Page: stmt.Page, PerPage: stmt.PerPage}, nil
}

// OfType lists one type, DefaultTypedPerPage per page.
func (s *Store) OfType(ctx context.Context, name string, page int) (Page, error) {
	return s.Find(ctx, Query{Types: []string{name}, Page: page, PerPage: DefaultTypedPerPage})
}

// NotOfType lists everything except one type, DefaultTypedPerPage per page.
func (s *Store) NotOfType(ctx context.Context, name string, page int) (Page, error) {
	return s.Find(ctx, Query{Exclude: []string{name}, Page: page, PerPage: DefaultTypedPerPage})
}

func scanAsset(row pgx.Row) (*asset.Asset, error) {
	var a asset.Asset
	err := row.Scan(
		&a.ID, &a.Title, &a.Caption, &a.FileName, &a.ContentType, &a.FileSize,
		&a.Furniture, &a.CreatedBy, &a.UpdatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
