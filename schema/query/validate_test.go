package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsRule(t *testing.T) {
	s := newIssues(t)
	assert.NoError(t, FieldsRule(s, ""))
	assert.NoError(t, FieldsRule(s, "id,*,status"))
	err := FieldsRule(s, "id,foo")
	assert.Equal(t, Errors{{Kind: UnknownField, Param: "fields", Identifier: "foo", Resource: "jira_issues"}}, err)
	assert.EqualError(t, err, "jira_issues: the foo is present in fields param but is not an available field")
}

func TestRelationsRule(t *testing.T) {
	s := newIssues(t)
	assert.NoError(t, RelationsRule(s, "jira_project,jira_projects,worklogs"))
	assert.EqualError(t, RelationsRule(s, "invalid_name"),
		"jira_issues: the invalid_name is present in relations param but is not available hydration")
}

func TestSortRule(t *testing.T) {
	s := newIssues(t)
	assert.NoError(t, SortRule(s, "-jira_issue_id,+status"))
	assert.EqualError(t, SortRule(s, "-foo,status"),
		"jira_issues: the foo is present in sort param but is not available for sort")
}

func TestPageRule(t *testing.T) {
	assert.NoError(t, PageRule("", ""))
	assert.NoError(t, PageRule("2", "100"))
	err := PageRule("0", "101")
	require.Error(t, err)
	errs := err.(Errors)
	require.Len(t, errs, 2)
	assert.Equal(t, "page", errs[0].Param)
	assert.Equal(t, "page_size", errs[1].Param)
	assert.EqualError(t, errs[1], "the page_size param must be an integer between 1 and 100")
	assert.Error(t, PageRule("x", ""))
	assert.Error(t, PageRule("", "0"))
}

func TestFiltersRule(t *testing.T) {
	s := newIssues(t)
	params := ParseParams("status=Open&project_id=1&jira_issue_id[lt]=5&sort=id")
	assert.NoError(t, FiltersRule(s, params))

	params = ParseParams("bogus[eq]=1")
	assert.EqualError(t, FiltersRule(s, params),
		"jira_issues: the bogus is present in bogus param but is not an available field")
}

func TestValidate(t *testing.T) {
	s := newIssues(t)
	params := ParseParams("fields=foo&relations=bar&sort=baz&page=0&bogus=1")
	err := Validate(s, params)
	require.Error(t, err)
	errs, ok := err.(Errors)
	require.True(t, ok)
	assert.Len(t, errs, 5)
	issues := errs.ByParam()
	assert.Len(t, issues, 5)
	assert.Equal(t, []interface{}{"jira_issues: the bar is present in relations param but is not available hydration"}, issues["relations"])

	params = ParseParams("fields=id&relations=jira_project&sort=-id&page=1&page_size=30&project_id=2")
	assert.NoError(t, Validate(s, params))
}
