package sqlite

import (
	"fmt"
	"strings"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// quote quotes an identifier.
func quote(name string) string {
	return `"` + strings.Replace(name, `"`, `""`, -1) + `"`
}

// column returns the quoted column of a field, refusing any name the schema
// does not declare.
func (h *Handler) column(field string) (string, error) {
	if _, found := h.schema.Fields[field]; !found {
		return "", fmt.Errorf("%w: unknown column %q in %s", resource.ErrNotImplemented, field, h.table)
	}
	return quote(field), nil
}

func (h *Handler) isArray(field string) bool {
	return h.schema.Fields[field].ArrayFilterable
}

// where translates a predicate into a WHERE clause and its arguments.
func (h *Handler) where(p query.Predicate) (string, []interface{}, error) {
	if len(p) == 0 {
		return "", nil, nil
	}
	clauses := make([]string, 0, len(p))
	args := []interface{}{}
	for _, exp := range p {
		clause, a, err := h.translate(exp)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, a...)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func (h *Handler) translate(exp query.Expression) (string, []interface{}, error) {
	switch t := exp.(type) {
	case query.Compare:
		col, err := h.column(t.Field)
		if err != nil {
			return "", nil, err
		}
		if h.isArray(t.Field) {
			member := "EXISTS (SELECT 1 FROM json_each(" + col + ") WHERE value = ?)"
			switch t.Op {
			case query.OpEqual:
				return member, []interface{}{t.Value.Interface()}, nil
			case query.OpNotEqual:
				return "(" + col + " IS NOT NULL AND NOT " + member + ")", []interface{}{t.Value.Interface()}, nil
			}
			return "", nil, fmt.Errorf("%w: %s on list field %s", resource.ErrNotImplemented, t.Op, t.Field)
		}
		return fmt.Sprintf("%s %s ?", col, t.Op), []interface{}{t.Value.Interface()}, nil
	case query.In:
		return h.translateSet(t.Field, t.Values, false)
	case query.NotIn:
		return h.translateSet(t.Field, t.Values, true)
	case query.DateCompare:
		col, err := h.column(t.Field)
		if err != nil {
			return "", nil, err
		}
		if t.Op == query.OpLike {
			return "date(" + col + `) LIKE ? ESCAPE '\'`, []interface{}{t.Value.String()}, nil
		}
		return fmt.Sprintf("date(%s) %s ?", col, t.Op), []interface{}{t.Value.String()}, nil
	case query.Blank:
		col, err := h.column(t.Field)
		if err != nil {
			return "", nil, err
		}
		if t.Negate {
			return "(" + col + " IS NOT NULL OR " + col + " != ?)", []interface{}{""}, nil
		}
		return "(" + col + " IS NULL OR " + col + " = ?)", []interface{}{""}, nil
	case query.Like:
		col, err := h.column(t.Field)
		if err != nil {
			return "", nil, err
		}
		return col + ` LIKE ? ESCAPE '\'`, []interface{}{t.Pattern}, nil
	}
	return "", nil, fmt.Errorf("%w: expression %s", resource.ErrNotImplemented, exp)
}

func (h *Handler) translateSet(field string, values []query.Value, negate bool) (string, []interface{}, error) {
	col, err := h.column(field)
	if err != nil {
		return "", nil, err
	}
	marks := make([]string, 0, len(values))
	args := make([]interface{}, 0, len(values))
	for _, v := range values {
		marks = append(marks, "?")
		args = append(args, v.Interface())
	}
	set := "(" + strings.Join(marks, ", ") + ")"
	if h.isArray(field) {
		member := "EXISTS (SELECT 1 FROM json_each(" + col + ") WHERE value IN " + set + ")"
		if negate {
			return "(" + col + " IS NOT NULL AND NOT " + member + ")", args, nil
		}
		return member, args, nil
	}
	if negate {
		return col + " NOT IN " + set, args, nil
	}
	return col + " IN " + set, args, nil
}

// orderBy translates a sort into an ORDER BY clause. Ties are broken on the
// rowid.
func (h *Handler) orderBy(s query.Sort) (string, error) {
	terms := make([]string, 0, len(s)+1)
	for _, f := range s {
		col, err := h.column(f.Name)
		if err != nil {
			return "", err
		}
		if f.Reversed {
			col += " DESC"
		}
		terms = append(terms, col)
	}
	terms = append(terms, "rowid")
	return " ORDER BY " + strings.Join(terms, ", "), nil
}
