package assetstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/assetkit/pkg/assettype"
)

// Page sizes.
const (
	DefaultPerPage      = 10
	DefaultTypedPerPage = 20
	MaxPerPage          = 100
)

const (
	table   = "assets"
	columns = "id, title, caption, asset_file_name, asset_content_type, asset_file_size, " +
		"COALESCE(furniture, FALSE), created_by, updated_by, created_at, updated_at"
)

// Query selects a page of assets.
type Query struct {
	// Furniture filters layout assets: nil keeps all, true only layout
	// assets, false everything else.
	Furniture *bool
	// Search matches file name, title and caption, case-insensitively.
	Search string
	// Types keeps assets of any of the named types.
	Types []string
	// Exclude drops assets of any of the named types.
	Exclude []string
	// Page is 1-based. Zero means the first page.
	Page int
	// PerPage defaults to DefaultPerPage.
	PerPage int
}

// Statement is a rendered query with numbered placeholders.
type Statement struct {
	Select    string
	Count     string
	Args      []any
	CountArgs []any
	Page      int
	PerPage   int
}

// Condition returns the WHERE predicate of q.
func (q Query) Condition(reg *assettype.Registry) (assettype.Condition, error) {
	var conds []assettype.Condition

	conds = append(conds, SearchCondition(q.Search))

	if len(q.Types) > 0 {
		c, err := reg.TypesCondition(q.Types...)
		if err != nil {
			return assettype.Condition{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
		conds = append(conds, c)
	}

	for _, name := range q.Exclude {
		c, err := reg.NotCondition(name)
		if err != nil {
			return assettype.Condition{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
		conds = append(conds, c)
	}

	if q.Furniture != nil {
		conds = append(conds, FurnitureCondition(*q.Furniture))
	}

	return assettype.And(conds...), nil
}

// SearchCondition matches term against file name, title and caption,
// case-insensitively. A blank term yields the zero condition.
func SearchCondition(term string) assettype.Condition {
	term = strings.TrimSpace(term)
	if term == "" {
		return assettype.Condition{}
	}
	like := "%" + escapeLike(strings.ToLower(term)) + "%"
	return assettype.Raw(
		`LOWER(asset_file_name) LIKE ? OR LOWER(title) LIKE ? OR LOWER(caption) LIKE ?`,
		like, like, like,
	)
}

// FurnitureCondition selects layout assets, or everything else.
func FurnitureCondition(furniture bool) assettype.Condition {
	if furniture {
		return assettype.Raw("furniture = TRUE")
	}
	return assettype.Raw("furniture = FALSE OR furniture IS NULL")
}

// BuildFind renders q into a page query and a count query, newest first.
func BuildFind(reg *assettype.Registry, q Query) (Statement, error) {
	where, err := q.Condition(reg)
	if err != nil {
		return Statement{}, err
	}

	page, perPage := Paging(q.Page, q.PerPage)

	sql, args := where.Postgres(0)
	n := len(args)

	return Statement{
		Select: "SELECT " + columns + " FROM " + table + " WHERE " + sql +
			" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2),
		Count:     "SELECT COUNT(*) FROM " + table + " WHERE " + sql,
		Args:      append(append([]any{}, args...), perPage, (page-1)*perPage),
		CountArgs: args,
		Page:      page,
		PerPage:   perPage,
	}, nil
}

// Paging normalizes a 1-based page number and page size.
func Paging(page, perPage int) (int, int) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return max(page, 1), min(perPage, MaxPerPage)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
