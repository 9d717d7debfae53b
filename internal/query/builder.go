package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInactiveScope is returned when a mandatory scope criterion has nothing to
// filter on. Dropping a scope predicate would widen the query, so it is an error.
var ErrInactiveScope = errors.New("query: scope criterion is inactive")

// Statement is SQL text and the positional arguments bound to its placeholders,
// in placeholder order.
type Statement struct {
	SQL  string
	Args []any
}

// Select describes a list query over one table.
type Select struct {
	Table   string
	Columns []string
	// Scope criteria are always applied and must all be active.
	Scope []Criterion
	// Filters are optional; inactive ones are skipped.
	Filters []Criterion
	OrderBy []string
	// Page, when set, appends LIMIT ? OFFSET ? as the last two arguments.
	Page *Page
}

// Where returns the WHERE clause (without the keyword) and its arguments.
func (s Select) Where() (string, []any, error) {
	var fragments []string
	var args []any

	for i, c := range s.Scope {
		fragment, values, ok := c.Predicate()
		if !ok {
			return "", nil, fmt.Errorf("%w: scope[%d] on %s", ErrInactiveScope, i, s.Table)
		}
		fragments = append(fragments, fragment)
		args = append(args, values...)
	}

	for _, c := range s.Filters {
		fragment, values, ok := c.Predicate()
		if !ok {
			continue
		}
		fragments = append(fragments, fragment)
		args = append(args, values...)
	}

	return strings.Join(fragments, " AND "), args, nil
}

// Build renders the full SELECT statement.
func (s Select) Build() (Statement, error) {
	where, args, err := s.Where()
	if err != nil {
		return Statement{}, err
	}

	columns := "*"
	if len(s.Columns) > 0 {
		columns = strings.Join(s.Columns, ", ")
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(columns)
	b.WriteString(" FROM ")
	b.WriteString(s.Table)
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(s.OrderBy, ", "))
	}
	if s.Page != nil {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, s.Page.Limit, s.Page.Offset())
	}

	return Statement{SQL: b.String(), Args: args}, nil
}

// Count renders SELECT COUNT(*) over the same scope and filters, ignoring
// ordering and pagination.
func (s Select) Count() (Statement, error) {
	where, args, err := s.Where()
	if err != nil {
		return Statement{}, err
	}

	sql := "SELECT COUNT(*) FROM " + s.Table
	if where != "" {
		sql += " WHERE " + where
	}
	return Statement{SQL: sql, Args: args}, nil
}
