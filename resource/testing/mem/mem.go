// Package mem is an example storage handler that stores everything in memory.
// It is the reference implementation of the resource.Storer interface and
// evaluates plans with the query expressions Match methods.
package mem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// MemoryHandler is an example handler storing data in memory.
type MemoryHandler struct {
	sync.RWMutex

	// If Latency is set, the handler will introduce an artificial latency on
	// all operations.
	Latency time.Duration

	items map[string]*resource.Item
	ids   []string
}

// NewHandler creates an empty memory handler.
func NewHandler() *MemoryHandler {
	return &MemoryHandler{
		items: map[string]*resource.Item{},
		ids:   []string{},
	}
}

// NewSlowHandler creates an empty memory handler with specified latency.
func NewSlowHandler(latency time.Duration) *MemoryHandler {
	h := NewHandler()
	h.Latency = latency
	return h
}

// key normalizes an item id so ids of different numeric types match.
func key(id interface{}) string {
	return query.ValueOf(id).String()
}

// Insert inserts new items in memory.
func (m *MemoryHandler) Insert(ctx context.Context, items []*resource.Item) (err error) {
	m.Lock()
	defer m.Unlock()
	err = handleWithLatency(m.Latency, ctx, func() error {
		for _, item := range items {
			if _, found := m.items[key(item.ID)]; found {
				return resource.ErrConflict
			}
		}
		for _, item := range items {
			k := key(item.ID)
			m.items[k] = &resource.Item{ID: item.ID, Payload: copyPayload(item.Payload)}
			// Store ids in ordered slice for sorting
			m.ids = append(m.ids, k)
		}
		return nil
	})
	return err
}

// Find items from memory matching the plan.
func (m *MemoryHandler) Find(ctx context.Context, p *resource.Plan) (list *resource.ItemList, err error) {
	m.RLock()
	defer m.RUnlock()
	err = handleWithLatency(m.Latency, ctx, func() error {
		list = m.find(p)
		return nil
	})
	return list, err
}

func (m *MemoryHandler) find(p *resource.Plan) *resource.ItemList {
	// Fetch all items matching the filter
	list := &resource.ItemList{Items: []*resource.Item{}}
	for _, id := range m.ids {
		item := m.items[id]
		if !p.Predicate.Match(item.Payload) {
			continue
		}
		list.Items = append(list.Items, &resource.Item{ID: item.ID, Payload: copyPayload(item.Payload)})
	}
	list.Total = len(list.Items)

	// Apply sort
	if len(p.Sort) > 0 {
		sort.Stable(sortableItems{p.Sort, list.Items})
	}
	// Apply pagination
	if w := p.Window; w != nil {
		offset := w.Offset
		if offset < 0 {
			offset = 0
		}
		if offset >= list.Total {
			list.Items = []*resource.Item{}
		} else {
			list.Items = list.Items[offset:]
			if w.Limit >= 0 && w.Limit < len(list.Items) {
				list.Items = list.Items[:w.Limit]
			}
		}
	}
	return list
}

// copyPayload returns a deep copy of a payload so stored items can't be
// altered through returned ones.
func copyPayload(p map[string]interface{}) map[string]interface{} {
	c := make(map[string]interface{}, len(p))
	for k, v := range p {
		c[k] = copyValue(v)
	}
	return c
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return copyPayload(t)
	case []interface{}:
		c := make([]interface{}, len(t))
		for i, e := range t {
			c[i] = copyValue(e)
		}
		return c
	}
	return v
}
