package rest

import (
	"context"
	"net/http"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// listGet handles GET and HEAD requests on a resource URL.
func listGet(ctx context.Context, route *RouteMatch) (status int, headers http.Header, body interface{}) {
	rsrc := route.Resource()
	s := rsrc.Schema()
	if err := query.Validate(s, route.Params); err != nil {
		e := NewError(err)
		return e.Code, nil, e
	}
	q, err := query.Compile(s, route.Params)
	if err != nil {
		e := NewError(err)
		return e.Code, nil, e
	}
	list, err := rsrc.Find(ctx, q)
	if err != nil {
		e := NewError(err)
		return e.Code, nil, e
	}
	for _, item := range list.Items {
		item.Payload = rsrc.Project(item, q.Fields)
	}
	return http.StatusOK, nil, list
}
