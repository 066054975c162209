package assettype

import (
	"strconv"
	"strings"
)

// DefaultColumn is the column holding the stored content type.
const DefaultColumn = "asset_content_type"

// Condition is a composable SQL predicate description.
// It is rendered by the persistence layer; this package never executes queries.
// The zero Condition matches every row.
type Condition struct {
	sql  string
	args []any
}

// Raw builds a condition from a SQL fragment using ? placeholders.
func Raw(sql string, args ...any) Condition {
	return Condition{sql: strings.TrimSpace(sql), args: args}
}

// In builds "column IN (...)". An empty value list never matches.
func In(column string, values []string) Condition {
	if len(values) == 0 {
		return Condition{sql: "1=0"}
	}
	return Condition{sql: column + " IN (" + placeholders(len(values)) + ")", args: toArgs(values)}
}

// NotIn builds "column NOT IN (...)". An empty value list always matches.
// Rows with a NULL column never match, as in SQL.
func NotIn(column string, values []string) Condition {
	if len(values) == 0 {
		return Condition{sql: "1=1"}
	}
	return Condition{sql: column + " NOT IN (" + placeholders(len(values)) + ")", args: toArgs(values)}
}

// And joins conditions with AND. Zero conditions are skipped.
func And(conds ...Condition) Condition {
	return join(" AND ", conds)
}

// Or joins conditions with OR. Zero conditions are skipped.
func Or(conds ...Condition) Condition {
	return join(" OR ", conds)
}

// Not negates a condition. Negating the zero condition yields a condition
// that never matches.
func Not(c Condition) Condition {
	if c.IsZero() {
		return Condition{sql: "1=0"}
	}
	return Condition{sql: "NOT (" + c.sql + ")", args: c.args}
}

// IsZero reports whether the condition is empty.
func (c Condition) IsZero() bool {
	return c.sql == ""
}

// SQL returns the fragment with ? placeholders and its arguments.
// The zero condition renders as "1=1".
func (c Condition) SQL() (string, []any) {
	if c.IsZero() {
		return "1=1", nil
	}
	args := make([]any, len(c.args))
	copy(args, c.args)
	return c.sql, args
}

// Postgres returns the fragment with numbered placeholders starting at
// offset+1, for drivers such as pgx. Question marks inside single-quoted
// literals are left untouched.
func (c Condition) Postgres(offset int) (string, []any) {
	sql, args := c.SQL()
	var b strings.Builder
	b.Grow(len(sql) + len(args)*2)

	n := offset
	inQuote := false
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), args
}

// String returns the ? placeholder form, useful for logging.
func (c Condition) String() string {
	sql, _ := c.SQL()
	return sql
}

func join(sep string, conds []Condition) Condition {
	kept := make([]Condition, 0, len(conds))
	for _, c := range conds {
		if !c.IsZero() {
			kept = append(kept, c)
		}
	}
	switch len(kept) {
	case 0:
		return Condition{}
	case 1:
		return kept[0]
	}

	parts := make([]string, len(kept))
	var args []any
	for i, c := range kept {
		parts[i] = "(" + c.sql + ")"
		args = append(args, c.args...)
	}
	return Condition{sql: strings.Join(parts, sep), args: args}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
