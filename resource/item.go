package resource

import (
	"errors"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// Item represents an instance of an item.
type Item struct {
	// ID is used to uniquely identify the item in the resource collection.
	ID interface{}
	// Payload the actual data of the item
	Payload map[string]interface{}
	// Relations holds the hydrated relations of the item: a *Item (nil for a
	// missing owner) for BelongsTo relations or a []*Item for HasMany ones.
	Relations map[string]interface{}
}

// ItemList represents a page of items.
type ItemList struct {
	// Total defines the total number of items in the collection matching the
	// query, regardless of the requested page.
	Total int
	// Page is the page the list was requested for.
	Page query.Page
	// Items is the list of items contained in the current page.
	Items []*Item
}

// NewItem creates a new item from a payload.
func NewItem(payload map[string]interface{}) (*Item, error) {
	id, found := payload["id"]
	if !found {
		return nil, errors.New("Missing ID field")
	}
	return &Item{
		ID:      id,
		Payload: payload,
	}, nil
}

// Value implements query.Entity interface.
func (i *Item) Value(field string) (interface{}, bool) {
	v, found := i.Payload[field]
	return v, found
}

// Relation implements query.Entity interface.
func (i *Item) Relation(name string) (interface{}, bool) {
	r, found := i.Relations[name]
	if !found {
		return nil, false
	}
	switch t := r.(type) {
	case *Item:
		if t == nil {
			return nil, true
		}
		return t, true
	case []*Item:
		list := make([]query.Entity, 0, len(t))
		for _, item := range t {
			list = append(list, item)
		}
		return list, true
	}
	return nil, true
}

// setRelation stores a hydrated relation.
func (i *Item) setRelation(name string, value interface{}) {
	if i.Relations == nil {
		i.Relations = map[string]interface{}{}
	}
	i.Relations[name] = value
}

// Count returns the number of items of the page.
func (l *ItemList) Count() int {
	return len(l.Items)
}

// TotalPages returns the number of pages of the collection, at least 1.
func (l *ItemList) TotalPages() int {
	if l.Page.Size <= 0 || l.Total <= 0 {
		return 1
	}
	return (l.Total + l.Page.Size - 1) / l.Page.Size
}
