// Package query builds parameterized SQL for the list endpoints.
//
// Every optional filter is a Criterion variant that carries its own fragment
// template and bound values. Fragments only ever contain column names chosen by
// the caller at compile time and "?" placeholders; user input is bound, never
// concatenated.
package query

import (
	"strings"
)

// Criterion is a single predicate. ok is false when the criterion has nothing to
// filter on and must be left out of the WHERE clause.
type Criterion interface {
	Predicate() (fragment string, args []any, ok bool)
}

// Raw is a fixed fragment with its own arguments. It is used for mandatory
// scope predicates such as "tenant_id = ?" or "is_active = 1".
type Raw struct {
	Fragment string
	Args     []any
}

func (r Raw) Predicate() (string, []any, bool) {
	return r.Fragment, r.Args, r.Fragment != ""
}

// Equals matches a column against a scalar. An empty Value means "no filter".
type Equals struct {
	Column string
	Value  string
}

func (e Equals) Predicate() (string, []any, bool) {
	if e.Value == "" {
		return "", nil, false
	}
	return e.Column + " = ?", []any{e.Value}, true
}

// BoolEquals is a tri-state boolean filter: nil means absent, which is
// different from a present false.
type BoolEquals struct {
	Column string
	Value  *bool
}

func (b BoolEquals) Predicate() (string, []any, bool) {
	if b.Value == nil {
		return "", nil, false
	}
	return b.Column + " = ?", []any{*b.Value}, true
}

// FoldFunc is the SQL function the store registers to lower-case text with
// Unicode rules. SQLite's own LIKE and lower() only fold ASCII.
const FoldFunc = "unicode_lower"

// Fold lower-cases s the same way FoldFunc does in SQL.
func Fold(s string) string {
	return strings.ToLower(s)
}

// Contains is a case-insensitive substring match. Both sides are folded with
// FoldFunc, and LIKE wildcards in the needle are escaped so they match literally.
type Contains struct {
	Column string
	Needle string
}

func (c Contains) Predicate() (string, []any, bool) {
	if c.Needle == "" {
		return "", nil, false
	}
	return FoldFunc + "(" + c.Column + `) LIKE ? ESCAPE '\'`, []any{"%" + escapeLike(Fold(c.Needle)) + "%"}, true
}

// TagsOverlap matches rows whose JSON array column shares at least one value
// with Tags.
type TagsOverlap struct {
	Column string
	Tags   []string
}

func (t TagsOverlap) Predicate() (string, []any, bool) {
	tags := NormalizeTags(t.Tags)
	if len(tags) == 0 {
		return "", nil, false
	}

	placeholders := make([]string, len(tags))
	args := make([]any, len(tags))
	for i, tag := range tags {
		placeholders[i] = "?"
		args[i] = tag
	}

	fragment := "EXISTS (SELECT 1 FROM json_each(" + t.Column + ") WHERE json_each.value IN (" +
		strings.Join(placeholders, ", ") + "))"
	return fragment, args, true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
