package resource

import "context"

// Storer defines the interface of an handler able to retrieve resources.
type Storer interface {
	// Find searches for items in the backend store matching the plan
	// predicate. The plan window must be respected and the items sorted as
	// requested by the plan. If no items are found, an empty list should be
	// returned with no error. ItemList.Total must hold the number of items
	// matching the predicate regardless of the window.
	//
	// The whole predicate must be treated. If an expression is not implemented
	// by the storage handler, a resource.ErrNotImplemented must be returned.
	//
	// If the fetching of the data is not immediate, the method must listen for
	// cancellation on the passed ctx. If the operation is stopped due to
	// context cancellation, the function must return the result of the
	// ctx.Err() method.
	Find(ctx context.Context, p *Plan) (*ItemList, error)
}

// Inserter is an optional interface a Storer can implement to be seeded with
// items.
type Inserter interface {
	// Insert stores new items in the backend store.
	Insert(ctx context.Context, items []*Item) error
}
