package resource

import (
	"fmt"
	"strings"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// Plan is the abstract persistence query a compiled query is translated into.
// Storage handlers execute it.
type Plan struct {
	// Predicate holds the filter expressions, all of them must match.
	Predicate query.Predicate
	// Sort is the list of fields to sort on.
	Sort query.Sort
	// Relations holds the eager-load paths to hydrate once the items are
	// found.
	Relations []string
	// Page is the requested page. Zero for no pagination.
	Page query.Page
	// Window is the window the page covers, nil for all the items.
	Window *query.Window
}

// NewPlan returns an empty plan matching all the items.
func NewPlan() *Plan {
	return &Plan{}
}

// Where adds a comparison of field with v.
func (p *Plan) Where(field string, op query.Operator, v query.Value) *Plan {
	p.Predicate = append(p.Predicate, query.Compare{Field: field, Op: op, Value: v})
	return p
}

// WhereIn adds a set membership of field.
func (p *Plan) WhereIn(field string, values ...query.Value) *Plan {
	p.Predicate = append(p.Predicate, query.In{Field: field, Values: values})
	return p
}

// WhereNotIn adds a set exclusion of field.
func (p *Plan) WhereNotIn(field string, values ...query.Value) *Plan {
	p.Predicate = append(p.Predicate, query.NotIn{Field: field, Values: values})
	return p
}

// WhereDate adds a comparison of the calendar day of field with v.
func (p *Plan) WhereDate(field string, op query.Operator, v query.Value) *Plan {
	p.Predicate = append(p.Predicate, query.DateCompare{Field: field, Op: op, Value: v})
	return p
}

// WhereBlank adds a match on a nil or blank field, or on a non nil one if
// negate is true.
func (p *Plan) WhereBlank(field string, negate bool) *Plan {
	p.Predicate = append(p.Predicate, query.Blank{Field: field, Negate: negate})
	return p
}

// WhereLike adds a like match of field with an escaped pattern.
func (p *Plan) WhereLike(field, pattern string) *Plan {
	p.Predicate = append(p.Predicate, query.Like{Field: field, Pattern: pattern})
	return p
}

// OrderBy appends a sort field.
func (p *Plan) OrderBy(field string, reversed bool) *Plan {
	p.Sort = append(p.Sort, query.SortField{Name: field, Reversed: reversed})
	return p
}

// With appends eager-load paths.
func (p *Plan) With(paths ...string) *Plan {
	p.Relations = append(p.Relations, paths...)
	return p
}

// Paginate restricts the plan to a page.
func (p *Plan) Paginate(page query.Page) *Plan {
	p.Page = page
	p.Window = page.Window()
	return p
}

// Compile translates a compiled query into a plan.
//
// The in and nin criteria apply to the whole list of values at once, between
// to its two bounds. Any other criteria is applied once per value, all the
// resulting predicates being ANDed.
func Compile(q *query.Query) (*Plan, error) {
	p := NewPlan()
	for _, f := range q.Filters {
		if len(f.Values) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyClause, f.Field)
		}
		if !f.Op.IsSet() {
			for _, v := range f.Values {
				p.where(f.Field, f.Op, v)
			}
			continue
		}
		switch f.Op {
		case query.OpIn:
			p.WhereIn(f.Field, f.Values...)
		case query.OpNotIn:
			p.WhereNotIn(f.Field, f.Values...)
		case query.OpBetween:
			if len(f.Values) != 2 {
				return nil, &query.Error{Kind: query.MalformedFilterValue, Param: f.Field, Identifier: joinValues(f.Values)}
			}
			p.where(f.Field, query.OpGreaterOrEqual, f.Values[0])
			p.where(f.Field, query.OpLowerOrEqual, f.Values[1])
		}
	}
	for _, s := range q.Sort {
		p.OrderBy(s.Name, s.Reversed)
	}
	p.With(q.Relations...)
	if q.Page.Size > 0 {
		p.Paginate(q.Page)
	}
	return p, nil
}

// where compiles a single filter value.
func (p *Plan) where(field string, op query.Operator, v query.Value) {
	switch {
	case v.Kind == query.DateValue:
		p.WhereDate(field, op, v)
	case v.IsBlank() && op == query.OpEqual:
		p.WhereBlank(field, false)
	case v.IsBlank() && op == query.OpNotEqual:
		p.WhereBlank(field, true)
	case op == query.OpLike:
		p.WhereLike(field, query.EscapeLike(v.String()))
	default:
		p.Where(field, op, v)
	}
}

func joinValues(values []query.Value) string {
	s := make([]string, 0, len(values))
	for _, v := range values {
		s = append(s, v.String())
	}
	return strings.Join(s, ",")
}
