package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

func newIndex(t *testing.T) (resource.Index, *resource.Resource) {
	t.Helper()
	index := resource.NewIndex()
	users := index.Bind("users", &schema.Schema{Fields: schema.Fields{"id": {}, "name": {}}}, nil, resource.DefaultConf)
	require.NoError(t, index.(resource.Compiler).Compile())
	return index, users
}

func TestFindRoute(t *testing.T) {
	index, users := newIndex(t)

	r, _ := http.NewRequest(http.MethodGet, "/users?name[lk]=Lu%25&sort=-id", nil)
	route, err := FindRoute(index, r)
	require.NoError(t, err)
	assert.Equal(t, users, route.Resource())
	assert.Equal(t, "users", route.ResourceName)
	assert.False(t, route.IsItem())
	assert.Equal(t, query.Params{
		{Name: "name", Criteria: []query.Criterion{{Token: "lk", Value: "Lu%"}}},
		{Name: "sort", Value: "-id"},
	}, route.Params)

	r, _ = http.NewRequest(http.MethodGet, "/users/1234/", nil)
	route, err = FindRoute(index, r)
	require.NoError(t, err)
	assert.Equal(t, users, route.Resource())
	assert.True(t, route.IsItem())
	assert.Equal(t, "1234", route.ResourceID)
	assert.Equal(t, query.Params{}, route.Params)
}

func TestFindRouteErrors(t *testing.T) {
	index, _ := newIndex(t)
	for _, path := range []string{"/", "/teams", "/users/1/teams", "/users/1/teams/2"} {
		r, _ := http.NewRequest(http.MethodGet, path, nil)
		_, err := FindRoute(index, r)
		assert.Equal(t, ErrResourceNotFound, err, path)
	}

}

func TestFindRouteRawPercent(t *testing.T) {
	index, _ := newIndex(t)
	r, _ := http.NewRequest(http.MethodGet, "/users", nil)
	r.URL.RawQuery = "name[lk]=Lu%&sort=%zz"
	route, err := FindRoute(index, r)
	require.NoError(t, err)
	assert.Equal(t, query.Params{
		{Name: "name", Criteria: []query.Criterion{{Token: "lk", Value: "Lu%"}}},
		{Name: "sort", Value: "%zz"},
	}, route.Params)
}

func TestRouteFromContext(t *testing.T) {
	route := &RouteMatch{Method: http.MethodGet, ResourceName: "users"}
	ctx := contextWithRoute(context.Background(), route)
	got, found := RouteFromContext(ctx)
	assert.True(t, found)
	assert.Equal(t, route, got)
}

func TestNextPathComponent(t *testing.T) {
	name, rest := nextPathComponent("/users/1/")
	assert.Equal(t, "users", name)
	assert.Equal(t, "1", rest)
	name, rest = nextPathComponent("users")
	assert.Equal(t, "users", name)
	assert.Equal(t, "", rest)
}
