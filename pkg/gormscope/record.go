package gormscope

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/assetkit/pkg/asset"
)

// Record maps a row of the assets table.
type Record struct {
	ID          uuid.UUID    `gorm:"column:id;primaryKey;type:uuid"`
	Title       string       `gorm:"column:title"`
	Caption     string       `gorm:"column:caption"`
	FileName    string       `gorm:"column:asset_file_name"`
	ContentType string       `gorm:"column:asset_content_type;index"`
	FileSize    int64        `gorm:"column:asset_file_size"`
	Furniture   sql.NullBool `gorm:"column:furniture;default:false"`
	CreatedBy   *uuid.UUID   `gorm:"column:created_by;type:uuid"`
	UpdatedBy   *uuid.UUID   `gorm:"column:updated_by;type:uuid"`
	CreatedAt   time.Time    `gorm:"column:created_at"`
	UpdatedAt   time.Time    `gorm:"column:updated_at"`
}

func (Record) TableName() string {
	return "assets"
}

// FromAsset converts an asset into a record.
func FromAsset(a *asset.Asset) Record {
	return Record{
		ID:          a.ID,
		Title:       a.Title,
		Caption:     a.Caption,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		FileSize:    a.FileSize,
		Furniture:   sql.NullBool{Bool: a.Furniture, Valid: true},
		CreatedBy:   a.CreatedBy,
		UpdatedBy:   a.UpdatedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// Asset converts the record. A NULL furniture flag reads as false.
func (r Record) Asset() *asset.Asset {
	return &asset.Asset{
		ID:          r.ID,
		Title:       r.Title,
		Caption:     r.Caption,
		FileName:    r.FileName,
		ContentType: r.ContentType,
		FileSize:    r.FileSize,
		Furniture:   r.Furniture.Valid && r.Furniture.Bool,
		CreatedBy:   r.CreatedBy,
		UpdatedBy:   r.UpdatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Assets converts a slice of records.
func Assets(records []Record) []*asset.Asset {
	out := make([]*asset.Asset, len(records))
	for i, r := range records {
		out[i] = r.Asset()
	}
	return out
}
