package repository

import (
	"fmt"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// FilterBuilder composes a parameterized listing query. Every dynamic
// predicate contributes placeholders tied 1:1 to a parallel argument
// list; caller-supplied values are never written into the query text.
// Ordering is fixed to most-recent-first and is not caller-controllable.
type FilterBuilder struct {
	conds []string
	args  []any
	page  int
	limit int
}

func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{page: 1, limit: DefaultLimit}
}

// Where adds a predicate template containing exactly one "?" marker and
// binds value to it.
func (b *FilterBuilder) Where(expr string, value any) *FilterBuilder {
	b.conds = append(b.conds, expr)
	b.args = append(b.args, value)
	return b
}

// Search adds a case-insensitive substring predicate across the given
// columns. The wildcard markers wrap the bound value, not the query
// shape, so the term itself is still passed as a parameter.
func (b *FilterBuilder) Search(term string, columns ...string) *FilterBuilder {
	if len(columns) == 0 {
		return b
	}

	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, column+" ILIKE ?")
		b.args = append(b.args, "%"+term+"%")
	}

	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	return b
}

// Paginate clamps limit into [1, MaxLimit] and page to >= 1. Out of
// range input is normalized, not rejected, so listings stay satisfiable.
func (b *FilterBuilder) Paginate(page int, limit int) *FilterBuilder {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	b.page = page
	b.limit = limit
	return b
}

func (b *FilterBuilder) Page() int  { return b.page }
func (b *FilterBuilder) Limit() int { return b.limit }

// SQL renders the listing query for the given base SELECT (no WHERE in
// the base) plus the matching argument list. LIMIT and OFFSET are bound
// parameters like everything else.
func (b *FilterBuilder) SQL(base string) (string, []any) {
	var sb strings.Builder
	sb.WriteString(base)
	b.writeConds(&sb)
	sb.WriteString(" ORDER BY created_at DESC")

	args := make([]any, len(b.args), len(b.args)+2)
	copy(args, b.args)
	args = append(args, b.limit, (b.page-1)*b.limit)
	sb.WriteString(" LIMIT ? OFFSET ?")

	return numberPlaceholders(sb.String()), args
}

// CountSQL renders the companion count query over the same predicate
// set, without pagination, so listing metadata stays consistent with
// the filtered rows.
func (b *FilterBuilder) CountSQL(base string) (string, []any) {
	var sb strings.Builder
	sb.WriteString(base)
	b.writeConds(&sb)

	args := make([]any, len(b.args))
	copy(args, b.args)

	return numberPlaceholders(sb.String()), args
}

func (b *FilterBuilder) writeConds(sb *strings.Builder) {
	if len(b.conds) == 0 {
		return
	}

	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(b.conds, " AND "))
}

// numberPlaceholders rewrites "?" markers into pgx positional
// placeholders $1..$n in order of appearance.
func numberPlaceholders(query string) string {
	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteByte(query[i])
	}

	return sb.String()
}
