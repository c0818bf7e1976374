package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/afex/hystrix-go/hystrix"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

var (
	// ErrNotFound represents a 404 HTTP error.
	ErrNotFound = &Error{http.StatusNotFound, "Not Found", nil}
	// ErrResourceNotFound is returned when the URL does not match any
	// resource.
	ErrResourceNotFound = &Error{http.StatusNotFound, "Resource Not Found", nil}
	// ErrInvalidMethod happens when the used HTTP method is not supported for
	// this resource.
	ErrInvalidMethod = &Error{http.StatusMethodNotAllowed, "Invalid Method", nil}
	// ErrClientClosedRequest is returned when the client closed the connection
	// before the server was able to finish processing the request.
	ErrClientClosedRequest = &Error{499, "Client Closed Request", nil}
	// ErrNotImplemented happens when a requested feature is not implemented.
	ErrNotImplemented = &Error{http.StatusNotImplemented, "Not Implemented", nil}
	// ErrServiceUnavailable is returned when the storage circuit is open or
	// saturated.
	ErrServiceUnavailable = &Error{http.StatusServiceUnavailable, "Service Unavailable", nil}
	// ErrGatewayTimeout is returned when the specified timeout for the request
	// has been reached before the server was able to process it.
	ErrGatewayTimeout = &Error{http.StatusGatewayTimeout, "Deadline Exceeded", nil}
	// ErrUnknown is thrown when the origin of the error can't be identified.
	ErrUnknown = &Error{520, "Unknown Error", nil}
)

// invalidParamsMessage is the message of 422 errors on query parameters.
const invalidParamsMessage = "URL parameters contain error(s)"

// Error defines a REST error with optional per parameter error details.
type Error struct {
	// Code defines the error code to be used for the error and for the HTTP
	// status.
	Code int
	// Message is the error message.
	Message string
	// Issues holds per parameter errors if any.
	Issues map[string][]interface{}
}

// NewError returns a rest.Error from an standard error.
//
// If the the inputted error is recognized, the appropriate rest.Error is mapped.
func NewError(err error) *Error {
	if err == nil {
		return nil
	}
	var (
		restErr  *Error
		qErrs    query.Errors
		qErr     *query.Error
		circuitE hystrix.CircuitError
	)
	switch {
	case errors.As(err, &restErr):
		return restErr
	case errors.As(err, &qErrs):
		return &Error{http.StatusUnprocessableEntity, invalidParamsMessage, qErrs.ByParam()}
	case errors.As(err, &qErr):
		return &Error{http.StatusUnprocessableEntity, invalidParamsMessage, query.Errors{qErr}.ByParam()}
	case errors.Is(err, context.Canceled):
		return ErrClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return ErrGatewayTimeout
	case errors.Is(err, resource.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, resource.ErrNotImplemented):
		return ErrNotImplemented
	case errors.Is(err, resource.ErrNoStorage):
		return &Error{http.StatusNotImplemented, err.Error(), nil}
	case errors.As(err, &circuitE):
		return ErrServiceUnavailable
	default:
		return &Error{520, err.Error(), nil}
	}
}

// Error returns the error as string
func (e *Error) Error() string {
	return e.Message
}
