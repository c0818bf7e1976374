/*
Package query compiles the flat query-string grammar shared by every resource
into a typed, validated representation, and shapes loaded items back into
depth-bounded, field-filtered documents.

A query is composed of the following elements:

  * Fields, the sparse fieldset of attributes to emit (fields=id,name).
  * Relations, the relations to hydrate (relations=team,time_entries).
  * Sort, a coma separated list of fields, each optionally prefixed by - for a
    descending or + for an ascending order (sort=-name,lastname).
  * Page, the page number and size (page=2&page_size=30).
  * Filters, every other parameter, either field=value for an equality or
    field[criteria]=value with one of the criteria tokens (status[lk]=Open%).

Parameters are first checked by the validators (see Validate), then compiled
by Compile into a Query consumed by the resource package.
*/
package query

// Query is the compiled, immutable form of the request parameters.
type Query struct {
	// Filters are the filter clauses, in declaration order.
	Filters []Filter

	// Sort is the list of fields to sort on, first wins.
	Sort Sort

	// Page is the requested page.
	Page Page

	// Fields is the sparse fieldset. A single "*" element selects all fields.
	Fields []string

	// Relations is the list of eager-load paths with aliases resolved.
	Relations []string
}

// Filter is a single filter clause.
type Filter struct {
	// Field is the name of the filtered field, after proxy remapping.
	Field string

	// Op is the operator of the criteria token.
	Op Operator

	// Values holds at least one value.
	Values []Value
}

// AllFields returns true if the query selects all fields.
func (q *Query) AllFields() bool {
	for _, f := range q.Fields {
		if f == "*" {
			return true
		}
	}
	return len(q.Fields) == 0
}
