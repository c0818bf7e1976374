package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

type allHooks struct {
	calls []string
}

func (h *allHooks) OnFind(ctx context.Context, q *query.Query) error {
	h.calls = append(h.calls, "find")
	return nil
}

func (h *allHooks) OnFound(ctx context.Context, q *query.Query, list **ItemList, err *error) {
	h.calls = append(h.calls, "found")
}

func (h *allHooks) OnGet(ctx context.Context, id string) error {
	h.calls = append(h.calls, "get:"+id)
	return nil
}

func (h *allHooks) OnGot(ctx context.Context, item **Item, err *error) {
	h.calls = append(h.calls, "got")
}

func TestEventHandlerUse(t *testing.T) {
	h := &eventHandler{}
	assert.NoError(t, h.use(&allHooks{}))
	assert.Len(t, h.onFindH, 1)
	assert.Len(t, h.onFoundH, 1)
	assert.Len(t, h.onGetH, 1)
	assert.Len(t, h.onGotH, 1)
	assert.EqualError(t, h.use("foo"), "does not implement any event handler interface")
}

func TestEventHandlerCalls(t *testing.T) {
	h := &eventHandler{}
	a := &allHooks{}
	_ = h.use(a)
	ctx := context.Background()
	var list *ItemList
	var item *Item
	var err error
	assert.NoError(t, h.onFind(ctx, &query.Query{}))
	h.onFound(ctx, &query.Query{}, &list, &err)
	assert.NoError(t, h.onGet(ctx, "1"))
	h.onGot(ctx, &item, &err)
	assert.Equal(t, []string{"find", "found", "get:1", "got"}, a.calls)
}

func TestEventHandlerStopsOnError(t *testing.T) {
	h := &eventHandler{}
	denied := errors.New("denied")
	var second bool
	_ = h.use(FindEventHandlerFunc(func(ctx context.Context, q *query.Query) error {
		return denied
	}))
	_ = h.use(FindEventHandlerFunc(func(ctx context.Context, q *query.Query) error {
		second = true
		return nil
	}))
	assert.Equal(t, denied, h.onFind(context.Background(), &query.Query{}))
	assert.False(t, second)
}

func TestEventHandlerRewritesResult(t *testing.T) {
	h := &eventHandler{}
	_ = h.use(GotEventHandlerFunc(func(ctx context.Context, item **Item, err *error) {
		if errors.Is(*err, ErrNotFound) {
			*item = &Item{ID: 0, Payload: map[string]interface{}{"id": 0}}
			*err = nil
		}
	}))
	var item *Item
	err := ErrNotFound
	h.onGot(context.Background(), &item, &err)
	assert.NoError(t, err)
	assert.Equal(t, 0, item.ID)
}
