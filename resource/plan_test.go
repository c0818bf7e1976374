package resource

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

func TestCompileFilters(t *testing.T) {
	jan := query.Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	feb := query.Date(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	tests := []struct {
		name   string
		filter query.Filter
		want   query.Predicate
	}{
		{
			"blank equal",
			query.Filter{Field: "status", Op: query.OpEqual, Values: []query.Value{query.String("")}},
			query.Predicate{query.Blank{Field: "status"}},
		},
		{
			"blank not equal",
			query.Filter{Field: "status", Op: query.OpNotEqual, Values: []query.Value{query.String("")}},
			query.Predicate{query.Blank{Field: "status", Negate: true}},
		},
		{
			"like escaped",
			query.Filter{Field: "status", Op: query.OpLike, Values: []query.Value{query.String("100% done")}},
			query.Predicate{query.Like{Field: "status", Pattern: `100\% done`}},
		},
		{
			"like wildcard",
			query.Filter{Field: "status", Op: query.OpLike, Values: []query.Value{query.String("Awaiting%")}},
			query.Predicate{query.Like{Field: "status", Pattern: "Awaiting%"}},
		},
		{
			"date",
			query.Filter{Field: "created_at", Op: query.OpGreaterOrEqual, Values: []query.Value{jan}},
			query.Predicate{query.DateCompare{Field: "created_at", Op: query.OpGreaterOrEqual, Value: jan}},
		},
		{
			"comparison",
			query.Filter{Field: "jira_issue_id", Op: query.OpLowerThan, Values: []query.Value{query.Number(500)}},
			query.Predicate{query.Compare{Field: "jira_issue_id", Op: query.OpLowerThan, Value: query.Number(500)}},
		},
		{
			"multiple values are ANDed",
			query.Filter{Field: "id", Op: query.OpGreaterThan, Values: []query.Value{query.Number(1), query.Number(2)}},
			query.Predicate{
				query.Compare{Field: "id", Op: query.OpGreaterThan, Value: query.Number(1)},
				query.Compare{Field: "id", Op: query.OpGreaterThan, Value: query.Number(2)},
			},
		},
		{
			"in",
			query.Filter{Field: "id", Op: query.OpIn, Values: []query.Value{query.Number(1), query.Number(2)}},
			query.Predicate{query.In{Field: "id", Values: []query.Value{query.Number(1), query.Number(2)}}},
		},
		{
			"not in",
			query.Filter{Field: "id", Op: query.OpNotIn, Values: []query.Value{query.Number(1)}},
			query.Predicate{query.NotIn{Field: "id", Values: []query.Value{query.Number(1)}}},
		},
		{
			"between",
			query.Filter{Field: "id", Op: query.OpBetween, Values: []query.Value{query.Number(1), query.Number(5)}},
			query.Predicate{
				query.Compare{Field: "id", Op: query.OpGreaterOrEqual, Value: query.Number(1)},
				query.Compare{Field: "id", Op: query.OpLowerOrEqual, Value: query.Number(5)},
			},
		},
		{
			"between dates",
			query.Filter{Field: "date", Op: query.OpBetween, Values: []query.Value{jan, feb}},
			query.Predicate{
				query.DateCompare{Field: "date", Op: query.OpGreaterOrEqual, Value: jan},
				query.DateCompare{Field: "date", Op: query.OpLowerOrEqual, Value: feb},
			},
		},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(&query.Query{Filters: []query.Filter{tt.filter}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Predicate)
		})
	}
}

func TestCompileBetweenArity(t *testing.T) {
	_, err := Compile(&query.Query{Filters: []query.Filter{
		{Field: "id", Op: query.OpBetween, Values: []query.Value{query.Number(1)}},
	}})
	assert.Equal(t, &query.Error{Kind: query.MalformedFilterValue, Param: "id", Identifier: "1"}, err)
}

func TestCompileEmptyClause(t *testing.T) {
	_, err := Compile(&query.Query{Filters: []query.Filter{{Field: "id", Op: query.OpEqual}}})
	assert.True(t, errors.Is(err, ErrEmptyClause))
}

func TestCompilePlan(t *testing.T) {
	p, err := Compile(&query.Query{
		Sort:      query.Sort{{Name: "name", Reversed: true}, {Name: "lastname"}},
		Page:      query.Page{Number: 2, Size: 30},
		Relations: []string{"team", "time_entries.jira_issue"},
	})
	require.NoError(t, err)
	assert.Equal(t, &Plan{
		Sort:      query.Sort{{Name: "name", Reversed: true}, {Name: "lastname"}},
		Relations: []string{"team", "time_entries.jira_issue"},
		Page:      query.Page{Number: 2, Size: 30},
		Window:    &query.Window{Offset: 30, Limit: 30},
	}, p)
}
