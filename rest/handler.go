package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
)

// Handler is a net/http compatible handler used to serve the configured REST
// API.
type Handler struct {
	// ResponseFormatter can be changed to extend the DefaultResponseFormatter.
	ResponseFormatter ResponseFormatter
	// ResponseSender can be changed to extend the DefaultResponseSender.
	ResponseSender ResponseSender
	// RequestTimeout is the default timeout for requests after which the
	// whole request is abandoned. The default value is no timeout.
	RequestTimeout time.Duration
	// index stores the resource router.
	index resource.Index
}

// NewHandler creates an new REST API HTTP handler with the specified resource
// index. The index is compiled if not already done.
func NewHandler(i resource.Index) (*Handler, error) {
	if c, ok := i.(resource.Compiler); ok {
		if err := c.Compile(); err != nil {
			return nil, err
		}
	}
	h := &Handler{
		ResponseFormatter: DefaultResponseFormatter{},
		ResponseSender:    DefaultResponseSender{},
		index:             i,
	}
	return h, nil
}

// getContext creates a context with the configured timeout. The context is
// canceled as soon as the request connection is closed.
func (h *Handler) getContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.RequestTimeout > 0 {
		return context.WithTimeout(r.Context(), h.RequestTimeout)
	}
	return context.WithCancel(r.Context())
}

// ServeHTTP handles requests as a http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.getContext(r)
	defer cancel()
	skipBody := r.Method == http.MethodHead
	headers := http.Header{}

	route, err := FindRoute(h.index, r)
	if err != nil {
		e := NewError(err)
		ctx, status, body := formatResponse(ctx, h.ResponseFormatter, e.Code, headers, e, skipBody)
		h.ResponseSender.Send(ctx, w, status, headers, body)
		return
	}
	ctx = contextWithRoute(ctx, route)
	status, h2, res := processRequest(ctx, route)
	for k, v := range h2 {
		headers[k] = v
	}
	ctx, status, body := formatResponse(ctx, h.ResponseFormatter, status, headers, res, skipBody)
	h.ResponseSender.Send(ctx, w, status, headers, body)
}
