package query

import (
	"fmt"
	"strings"
)

// ErrorKind identifies the class of a client request error.
type ErrorKind int

// Client request error kinds.
const (
	UnknownCriteria ErrorKind = iota + 1
	MalformedFilterValue
	UnknownField
	UnknownRelation
	UnknownSortField
	InvalidPage
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownCriteria:
		return "unknown_criteria"
	case MalformedFilterValue:
		return "malformed_filter_value"
	case UnknownField:
		return "unknown_field"
	case UnknownRelation:
		return "unknown_relation"
	case UnknownSortField:
		return "unknown_sort_field"
	case InvalidPage:
		return "invalid_page"
	default:
		return "unknown"
	}
}

// Error is a client request error. It carries the offending parameter and
// identifier so the HTTP layer can report it per parameter.
type Error struct {
	Kind ErrorKind
	// Param is the query-string parameter holding the error (i.e.: fields,
	// sort or a filter name).
	Param string
	// Identifier is the offending field, relation, token or value.
	Identifier string
	// Resource is the name of the queried resource, if known.
	Resource string
	// Reason completes the message for InvalidPage errors.
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case UnknownCriteria:
		msg = fmt.Sprintf("the %s criteria is present in %s param but is not a valid criteria", e.Identifier, e.Param)
	case MalformedFilterValue:
		msg = fmt.Sprintf("the %s param has a malformed value `%s'", e.Param, e.Identifier)
	case UnknownField:
		msg = fmt.Sprintf("the %s is present in %s param but is not an available field", e.Identifier, e.Param)
	case UnknownRelation:
		msg = fmt.Sprintf("the %s is present in relations param but is not available hydration", e.Identifier)
	case UnknownSortField:
		msg = fmt.Sprintf("the %s is present in sort param but is not available for sort", e.Identifier)
	case InvalidPage:
		msg = fmt.Sprintf("the %s param %s", e.Param, e.Reason)
	default:
		msg = "invalid query"
	}
	if e.Resource != "" {
		return e.Resource + ": " + msg
	}
	return msg
}

// Errors is a list of client request errors reported together.
type Errors []*Error

// Error implements the error interface.
func (errs Errors) Error() string {
	s := make([]string, 0, len(errs))
	for _, e := range errs {
		s = append(s, e.Error())
	}
	return strings.Join(s, ", ")
}

// ByParam groups the error messages by parameter name.
func (errs Errors) ByParam() map[string][]interface{} {
	issues := map[string][]interface{}{}
	for _, e := range errs {
		issues[e.Param] = append(issues[e.Param], e.Error())
	}
	return issues
}

func (errs Errors) errOrNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
