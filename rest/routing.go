package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// RouteMatch represent a REST request's matched resource with the method to
// apply and its parameters.
type RouteMatch struct {
	// Method is the HTTP method used on the resource.
	Method string
	// ResourceName is the name of the targeted resource.
	ResourceName string
	// ResourceID is the item id of an item request, empty on a list request.
	ResourceID string
	// Params is the ordered list of client provided query-string parameters.
	Params query.Params

	rsrc *resource.Resource
}

type key int

const routeKey key = iota

func contextWithRoute(ctx context.Context, route *RouteMatch) context.Context {
	return context.WithValue(ctx, routeKey, route)
}

// RouteFromContext extracts the matched route from the given context.
func RouteFromContext(ctx context.Context) (*RouteMatch, bool) {
	route, ok := ctx.Value(routeKey).(*RouteMatch)
	return route, ok
}

// Resource returns the targeted resource.
func (r *RouteMatch) Resource() *resource.Resource {
	return r.rsrc
}

// IsItem returns true if the route targets a single item.
func (r *RouteMatch) IsItem() bool {
	return r.ResourceID != ""
}

// FindRoute returns the REST route for the given request.
func FindRoute(index resource.Index, req *http.Request) (*RouteMatch, error) {
	route := &RouteMatch{Method: req.Method}
	name, path := nextPathComponent(req.URL.Path)
	rsrc, found := index.GetResource(name)
	if !found {
		return nil, ErrResourceNotFound
	}
	route.ResourceName = name
	route.rsrc = rsrc
	if path != "" {
		route.ResourceID, path = nextPathComponent(path)
		if path != "" {
			return nil, ErrResourceNotFound
		}
	}
	route.Params = query.ParseParams(req.URL.RawQuery)
	return route, nil
}

// nextPathComponent returns the next path component and the remaining path.
func nextPathComponent(path string) (string, string) {
	path = strings.Trim(path, "/")
	if i := strings.IndexByte(path, '/'); i != -1 {
		return path[:i], path[i+1:]
	}
	return path, ""
}
