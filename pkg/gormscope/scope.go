package gormscope

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dmitrymomot/assetkit/pkg/assetstore"
	"github.com/dmitrymomot/assetkit/pkg/assettype"
)

// Scope is a reusable gorm query modifier.
type Scope = func(*gorm.DB) *gorm.DB

// Where applies an assettype condition. The zero condition adds nothing.
func Where(c assettype.Condition) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if c.IsZero() {
			return db
		}
		sql, args := c.SQL()
		return db.Where(sql, args...)
	}
}

// OfType keeps records of the named type.
func OfType(reg *assettype.Registry, name string) Scope {
	return typed(reg.Condition(name))
}

// NotOfType drops records of the named type.
func NotOfType(reg *assettype.Registry, name string) Scope {
	return typed(reg.NotCondition(name))
}

// OfTypes keeps records of any of the named types.
func OfTypes(reg *assettype.Registry, names ...string) Scope {
	return typed(reg.TypesCondition(names...))
}

func typed(c assettype.Condition, err error) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if err != nil {
			_ = db.AddError(fmt.Errorf("%w: %w", assetstore.ErrInvalidQuery, err))
			return db
		}
		return Where(c)(db)
	}
}

// Furniture keeps layout assets.
func Furniture() Scope {
	return Where(assetstore.FurnitureCondition(true))
}

// NotFurniture drops layout assets. Rows with a NULL flag are kept.
func NotFurniture() Scope {
	return Where(assetstore.FurnitureCondition(false))
}

// Search matches file name, title and caption, case-insensitively.
func Search(term string) Scope {
	return Where(assetstore.SearchCondition(term))
}

// NewestFirst orders by creation time, newest first.
func NewestFirst() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}
}

// Paged limits to a 1-based page. A non-positive perPage means
// assetstore.DefaultPerPage.
func Paged(page, perPage int) Scope {
	page, perPage = assetstore.Paging(page, perPage)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * perPage).Limit(perPage)
	}
}
