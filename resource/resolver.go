package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// hydrate eager loads the relations of items named by paths. A path may be
// dotted to load the relations of the related items. Each relation level is
// loaded with a single query for all the items.
func (r *Resource) hydrate(ctx context.Context, items []*Item, paths []string) error {
	if len(items) == 0 || len(paths) == 0 {
		return nil
	}
	heads, nested := splitPaths(paths)
	for _, name := range heads {
		if err := r.hydrateRelation(ctx, items, name, nested[name]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resource) hydrateRelation(ctx context.Context, items []*Item, name string, paths []string) error {
	rel := r.schema.GetRelation(name)
	if rel == nil {
		return &query.Error{Kind: query.UnknownRelation, Param: query.ParamRelations, Identifier: name, Resource: r.name}
	}
	if rel.Inert {
		return nil
	}
	if rel.Alias != "" {
		return fmt.Errorf("%s: relation %s is an alias and can't be loaded as a nested path", r.name, name)
	}
	var target *Resource
	found := false
	if r.index != nil {
		target, found = r.index.GetResource(rel.Resource)
	}
	if !found {
		return fmt.Errorf("%s: relation %s: unknown resource %s", r.name, name, rel.Resource)
	}
	if rel.Kind == schema.HasMany {
		return hydrateMany(ctx, items, name, rel, target, paths)
	}
	return hydrateOwner(ctx, items, name, rel, target, paths)
}

func hydrateOwner(ctx context.Context, items []*Item, name string, rel *schema.Relation, target *Resource, paths []string) error {
	owners := map[string]*Item{}
	if keys := keysOf(items, rel.LocalKey); len(keys) > 0 {
		list, err := target.find(ctx, NewPlan().WhereIn(rel.Owner(), keys...).With(paths...))
		if err != nil {
			return err
		}
		for _, o := range list.Items {
			owners[keyOf(o.Payload[rel.Owner()])] = o
		}
	}
	for _, item := range items {
		var owner *Item
		if v := item.Payload[rel.LocalKey]; v != nil {
			owner = owners[keyOf(v)]
		}
		item.setRelation(name, owner)
	}
	return nil
}

func hydrateMany(ctx context.Context, items []*Item, name string, rel *schema.Relation, target *Resource, paths []string) error {
	groups := map[string][]*Item{}
	if keys := keysOf(items, rel.Local()); len(keys) > 0 {
		p := NewPlan().WhereIn(rel.ForeignKey, keys...).With(paths...)
		if target.schema.GetField("id") != nil {
			p.OrderBy("id", false)
		}
		list, err := target.find(ctx, p)
		if err != nil {
			return err
		}
		for _, c := range list.Items {
			k := keyOf(c.Payload[rel.ForeignKey])
			groups[k] = append(groups[k], c)
		}
	}
	for _, item := range items {
		children := []*Item{}
		if v := item.Payload[rel.Local()]; v != nil {
			if g, found := groups[keyOf(v)]; found {
				children = g
			}
		}
		item.setRelation(name, children)
	}
	return nil
}

// splitPaths groups eager-load paths by their first segment, keeping the
// order of first appearance.
func splitPaths(paths []string) ([]string, map[string][]string) {
	heads := []string{}
	nested := map[string][]string{}
	for _, path := range paths {
		head, rest := path, ""
		if i := strings.IndexByte(path, '.'); i != -1 {
			head, rest = path[:i], path[i+1:]
		}
		if head == "" {
			continue
		}
		if _, found := nested[head]; !found {
			heads = append(heads, head)
			nested[head] = nil
		}
		if rest != "" {
			nested[head] = append(nested[head], rest)
		}
	}
	return heads, nested
}

// keysOf returns the distinct non nil values of field.
func keysOf(items []*Item, field string) []query.Value {
	seen := map[string]bool{}
	keys := []query.Value{}
	for _, item := range items {
		v := item.Payload[field]
		if v == nil {
			continue
		}
		if k := keyOf(v); !seen[k] {
			seen[k] = true
			keys = append(keys, query.ValueOf(v))
		}
	}
	return keys
}

// keyOf normalizes a key so numbers of different types match.
func keyOf(v interface{}) string {
	return query.ValueOf(v).String()
}
