package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// Resource holds information about a class of items exposed on the API
type Resource struct {
	name    string
	schema  *schema.Schema
	storage Storer
	conf    Conf
	index   *index
	hooks   eventHandler
}

// newResource creates a new resource with provided schema, handler and config
func newResource(name string, s *schema.Schema, h Storer, c Conf) *Resource {
	if s.Name == "" {
		s.Name = name
	}
	return &Resource{
		name:    name,
		schema:  s,
		storage: h,
		conf:    c,
	}
}

// Name returns the name of the resource
func (r *Resource) Name() string {
	return r.name
}

// Schema returns the resource's schema
func (r *Resource) Schema() *schema.Schema {
	return r.schema
}

// Conf returns the resource's configuration
func (r *Resource) Conf() Conf {
	return r.conf
}

// Compile checks the resource schema against the resource graph.
func (r *Resource) Compile(rc schema.SchemaResolver) error {
	if err := r.schema.Compile(rc); err != nil {
		return fmt.Errorf("schema compilation error: %s", err)
	}
	return nil
}

// Use attaches an event handler to the resource. This event handler must
// implement at least one of the resource.*EventHandler interface or the method
// returns an error.
func (r *Resource) Use(e interface{}) error {
	return r.hooks.use(e)
}

// Find compiles q into a plan, executes it against the resource storage and
// hydrates the requested relations of the found items.
func (r *Resource) Find(ctx context.Context, q *query.Query) (list *ItemList, err error) {
	defer func(t time.Time) {
		found := -1
		if list != nil {
			found = len(list.Items)
		}
		logDebug(ctx, fmt.Sprintf("%s.Find(...)", r.name), map[string]interface{}{
			"duration": time.Since(t),
			"found":    found,
			"error":    err,
		})
	}(time.Now())
	if hooksDisabled(ctx) {
		return r.findQuery(ctx, q)
	}
	if err = r.hooks.onFind(ctx, q); err == nil {
		list, err = r.findQuery(ctx, q)
	}
	r.hooks.onFound(ctx, q, &list, &err)
	return
}

// Get finds the item whose id is id, hydrated with the relations of q. If the
// item is not found, ErrNotFound error is returned.
func (r *Resource) Get(ctx context.Context, id string, q *query.Query) (item *Item, err error) {
	defer func(t time.Time) {
		logDebug(ctx, fmt.Sprintf("%s.Get(%s)", r.name, id), map[string]interface{}{
			"duration": time.Since(t),
			"error":    err,
		})
	}(time.Now())
	if hooksDisabled(ctx) {
		return r.get(ctx, id, q)
	}
	if err = r.hooks.onGet(ctx, id); err == nil {
		item, err = r.get(ctx, id, q)
	}
	r.hooks.onGot(ctx, &item, &err)
	return
}

func (r *Resource) get(ctx context.Context, id string, q *query.Query) (*Item, error) {
	values, err := query.Normalize("id", id, false)
	if err != nil {
		return nil, ErrNotFound
	}
	gq := *q
	gq.Filters = []query.Filter{{Field: "id", Op: query.OpEqual, Values: values}}
	gq.Sort = nil
	gq.Page = query.Page{Number: 1, Size: 1}
	list, err := r.findQuery(ctx, &gq)
	if err != nil {
		return nil, err
	}
	if len(list.Items) == 0 {
		return nil, ErrNotFound
	}
	return list.Items[0], nil
}

func (r *Resource) findQuery(ctx context.Context, q *query.Query) (*ItemList, error) {
	p, err := Compile(q)
	if err != nil {
		if e, ok := err.(*query.Error); ok && e.Resource == "" {
			e.Resource = r.name
		}
		return nil, err
	}
	return r.find(ctx, p)
}

// Project shapes an item into its output document.
func (r *Resource) Project(item *Item, fields []string) map[string]interface{} {
	pc := query.NewProjection(fields, r.conf.MaxDepth)
	var rc schema.SchemaResolver
	if r.index != nil {
		rc = r.index
	}
	return pc.Project(r.schema, rc, item)
}

func (r *Resource) find(ctx context.Context, p *Plan) (*ItemList, error) {
	if r.storage == nil {
		return nil, ErrNoStorage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list, err := r.storage.Find(ctx, p)
	if err != nil {
		return nil, err
	}
	list.Page = p.Page
	if err := r.hydrate(ctx, list.Items, p.Relations); err != nil {
		return nil, err
	}
	return list, nil
}
