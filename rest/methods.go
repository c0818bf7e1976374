package rest

import (
	"context"
	"net/http"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
)

// processRequest calls the right method for the given route and returns
// either an Item, an ItemList or an Error.
func processRequest(ctx context.Context, route *RouteMatch) (status int, headers http.Header, body interface{}) {
	rsrc := route.Resource()
	if rsrc == nil {
		return ErrResourceNotFound.Code, nil, ErrResourceNotFound
	}
	conf := rsrc.Conf()
	mode := resource.List
	if route.IsItem() {
		mode = resource.Read
	}
	switch route.Method {
	case http.MethodGet, http.MethodHead:
		if !conf.IsModeAllowed(mode) {
			return ErrInvalidMethod.Code, nil, ErrInvalidMethod
		}
	case http.MethodOptions:
		headers = http.Header{}
		if conf.IsModeAllowed(mode) {
			headers.Set("Allow", "HEAD, GET")
		}
		return http.StatusOK, headers, nil
	default:
		return ErrInvalidMethod.Code, nil, ErrInvalidMethod
	}
	if route.IsItem() {
		return itemGet(ctx, route)
	}
	return listGet(ctx, route)
}
