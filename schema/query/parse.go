package query

import (
	"strconv"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema"
)

// compiler partitions the raw parameters into the query facets. Every stage
// marks the parameters it recognizes as consumed; what remains once all the
// stages ran are the filters.
type compiler struct {
	schema   *schema.Schema
	params   Params
	consumed map[string]bool
}

// Compile compiles the raw parameters into a Query for the resource described
// by s. The parameters are expected to have passed Validate: unknown relations
// are passed through as is.
//
// It returns an *Error of kind UnknownCriteria or MalformedFilterValue if a
// filter can't be compiled.
func Compile(s *schema.Schema, params Params) (*Query, error) {
	c := &compiler{
		schema:   s,
		params:   params,
		consumed: map[string]bool{},
	}
	q := &Query{
		Fields:    c.fields(),
		Relations: c.relations(),
		Sort:      c.sort(),
		Page:      c.page(),
	}
	filters, err := c.filters()
	if err != nil {
		if e, ok := err.(*Error); ok && e.Resource == "" {
			e.Resource = s.Name
		}
		return nil, err
	}
	q.Filters = filters
	return q, nil
}

// take returns the plain value of a reserved parameter and marks it consumed.
func (c *compiler) take(name string) (string, bool) {
	p, found := c.params.Get(name)
	if !found {
		return "", false
	}
	c.consumed[name] = true
	return p.Value, true
}

func (c *compiler) fields() []string {
	v, _ := c.take(ParamFields)
	if fields := splitList(v); len(fields) > 0 {
		return fields
	}
	return []string{"*"}
}

func (c *compiler) relations() []string {
	v, _ := c.take(ParamRelations)
	seen := map[string]bool{}
	relations := []string{}
	for _, name := range splitList(v) {
		path := name
		if r := c.schema.GetRelation(name); r != nil {
			var ok bool
			if path, ok = r.Resolve(name); !ok {
				continue
			}
		}
		if !seen[path] {
			seen[path] = true
			relations = append(relations, path)
		}
	}
	return relations
}

func (c *compiler) sort() Sort {
	v, _ := c.take(ParamSort)
	return ParseSort(v)
}

func (c *compiler) page() Page {
	p := Page{Number: 1, Size: DefaultPageSize}
	if v, found := c.take(ParamPage); found {
		if n, err := strconv.Atoi(v); err == nil {
			p.Number = n
		}
	}
	if v, found := c.take(ParamPageSize); found {
		if n, err := strconv.Atoi(v); err == nil {
			p.Size = n
		}
	}
	return p
}

// remaining returns the unconsumed parameters with proxied names moved onto
// the field they mediate. A proxied parameter overrides the field parameter
// if both are given.
func (c *compiler) remaining() Params {
	proxied := map[string]bool{}
	for _, p := range c.params {
		if c.consumed[p.Name] {
			continue
		}
		if field, found := c.schema.Mediated(p.Name); found {
			proxied[field] = true
		}
	}
	rest := Params{}
	for _, p := range c.params {
		if c.consumed[p.Name] {
			continue
		}
		if field, found := c.schema.Mediated(p.Name); found {
			p.Name = field
		} else if proxied[p.Name] {
			continue
		}
		rest = append(rest, p)
	}
	return rest
}

func (c *compiler) filters() ([]Filter, error) {
	filters := []Filter{}
	for _, p := range c.remaining() {
		text := false
		if f := c.schema.GetField(p.Name); f != nil {
			text = f.IsText(p.Name)
		}
		crs := p.Criteria
		if !p.IsBracketed() {
			crs = []Criterion{{Token: DefaultCriteria, Value: p.Value}}
		}
		for _, cr := range crs {
			op, found := LookupCriteria(cr.Token)
			if !found {
				return nil, &Error{Kind: UnknownCriteria, Param: p.Name, Identifier: cr.Token}
			}
			values, err := Normalize(p.Name, cr.Value, text)
			if err != nil {
				return nil, err
			}
			filters = append(filters, Filter{Field: p.Name, Op: op, Values: values})
		}
	}
	return filters, nil
}
