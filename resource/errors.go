package resource

import "errors"

var (
	// ErrNotFound is returned when the requested resource can't be found
	ErrNotFound = errors.New("Not Found")
	// ErrNotImplemented happens when a used predicate is not implemented by the
	// storage handler.
	ErrNotImplemented = errors.New("Not Implemented")
	// ErrNoStorage is returned when not storage handler has been set on the resource.
	ErrNoStorage = errors.New("No Storage Defined")
	// ErrEmptyClause is returned when a filter clause without any value reaches
	// the query compiler. Filter values are never empty once normalized, so it
	// is an internal fault.
	ErrEmptyClause = errors.New("Empty Filter Clause")
	// ErrConflict happens when an item with the same id is already stored.
	ErrConflict = errors.New("Conflict")
)
