package rest

import (
	"context"
	"net/http"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// itemGet handles GET and HEAD requests on an item URL. Only the fields and
// relations parameters are considered.
func itemGet(ctx context.Context, route *RouteMatch) (status int, headers http.Header, body interface{}) {
	rsrc := route.Resource()
	s := rsrc.Schema()
	params := query.Params{}
	for _, p := range route.Params {
		if p.Name == query.ParamFields || p.Name == query.ParamRelations {
			params = append(params, p)
		}
	}
	var errs query.Errors
	for _, err := range []error{
		query.FieldsRule(s, params.Value(query.ParamFields)),
		query.RelationsRule(s, params.Value(query.ParamRelations)),
	} {
		if e, ok := err.(query.Errors); ok {
			errs = append(errs, e...)
		}
	}
	if len(errs) > 0 {
		e := NewError(errs)
		return e.Code, nil, e
	}
	q, err := query.Compile(s, params)
	if err != nil {
		e := NewError(err)
		return e.Code, nil, e
	}
	item, err := rsrc.Get(ctx, route.ResourceID, q)
	if err != nil {
		e := NewError(err)
		return e.Code, nil, e
	}
	item.Payload = rsrc.Project(item, q.Fields)
	return http.StatusOK, nil, item
}
