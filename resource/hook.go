package resource

import (
	"context"
	"errors"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// FindEventHandler is an interface to be implemented by an event handler that
// want to be called before a find is performed on a resource. This interface is
// to be used with resource.Use() method.
type FindEventHandler interface {
	OnFind(ctx context.Context, q *query.Query) error
}

// FindEventHandlerFunc converts a function into a FindEventHandler.
type FindEventHandlerFunc func(ctx context.Context, q *query.Query) error

// OnFind implements FindEventHandler
func (e FindEventHandlerFunc) OnFind(ctx context.Context, q *query.Query) error {
	return e(ctx, q)
}

// FoundEventHandler is an interface to be implemented by an event handler that
// want to be called after a find has been performed on a resource. This
// interface is to be used with resource.Use() method.
type FoundEventHandler interface {
	OnFound(ctx context.Context, q *query.Query, list **ItemList, err *error)
}

// FoundEventHandlerFunc converts a function into a FoundEventHandler.
type FoundEventHandlerFunc func(ctx context.Context, q *query.Query, list **ItemList, err *error)

// OnFound implements FoundEventHandler
func (e FoundEventHandlerFunc) OnFound(ctx context.Context, q *query.Query, list **ItemList, err *error) {
	e(ctx, q, list, err)
}

// GetEventHandler is an interface to be implemented by an event handler that
// want to be called before a get is performed on a resource. This interface is
// to be used with resource.Use() method.
type GetEventHandler interface {
	OnGet(ctx context.Context, id string) error
}

// GetEventHandlerFunc converts a function into a GetEventHandler.
type GetEventHandlerFunc func(ctx context.Context, id string) error

// OnGet implements GetEventHandler
func (e GetEventHandlerFunc) OnGet(ctx context.Context, id string) error {
	return e(ctx, id)
}

// GotEventHandler is an interface to be implemented by an event handler that
// want to be called after a get has been performed on a resource. This
// interface is to be used with resource.Use() method.
type GotEventHandler interface {
	OnGot(ctx context.Context, item **Item, err *error)
}

// GotEventHandlerFunc converts a function into a GotEventHandler.
type GotEventHandlerFunc func(ctx context.Context, item **Item, err *error)

// OnGot implements GotEventHandler
func (e GotEventHandlerFunc) OnGot(ctx context.Context, item **Item, err *error) {
	e(ctx, item, err)
}

type eventHandler struct {
	onFindH  []FindEventHandler
	onFoundH []FoundEventHandler
	onGetH   []GetEventHandler
	onGotH   []GotEventHandler
}

func (h *eventHandler) use(e interface{}) error {
	found := false
	if e, ok := e.(FindEventHandler); ok {
		h.onFindH = append(h.onFindH, e)
		found = true
	}
	if e, ok := e.(FoundEventHandler); ok {
		h.onFoundH = append(h.onFoundH, e)
		found = true
	}
	if e, ok := e.(GetEventHandler); ok {
		h.onGetH = append(h.onGetH, e)
		found = true
	}
	if e, ok := e.(GotEventHandler); ok {
		h.onGotH = append(h.onGotH, e)
		found = true
	}
	if !found {
		return errors.New("does not implement any event handler interface")
	}
	return nil
}

func (h *eventHandler) onFind(ctx context.Context, q *query.Query) error {
	for _, e := range h.onFindH {
		if err := e.OnFind(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (h *eventHandler) onFound(ctx context.Context, q *query.Query, list **ItemList, err *error) {
	for _, e := range h.onFoundH {
		e.OnFound(ctx, q, list, err)
	}
}

func (h *eventHandler) onGet(ctx context.Context, id string) error {
	for _, e := range h.onGetH {
		if err := e.OnGet(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (h *eventHandler) onGot(ctx context.Context, item **Item, err *error) {
	for _, e := range h.onGotH {
		e.OnGot(ctx, item, err)
	}
}
