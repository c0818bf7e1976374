package query

import "github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema"

// DefaultMaxDepth is the relation nesting level expanded when none is given.
const DefaultMaxDepth = 2

// Entity is a loaded item the projection reads from.
type Entity interface {
	// Value returns the attribute named field.
	Value(field string) (interface{}, bool)

	// Relation returns the hydrated relation named name: an Entity, a []Entity
	// or nil for a missing owner. The boolean is false if the relation was not
	// hydrated.
	Relation(name string) (interface{}, bool)
}

// ProjectionContext holds the state of the projection of one entity.
type ProjectionContext struct {
	// Fields is the set of attributes to emit, nil for all.
	Fields map[string]bool

	// Depth is the current relation nesting level, 0 for the root entity.
	Depth int

	// MaxDepth is the relation nesting level up to which hydrated relations
	// are expanded.
	MaxDepth int

	// HidePossibleTransitions suppresses the expansion of every relation.
	HidePossibleTransitions bool
}

// NewProjection returns the root context for a sparse fieldset. A nil, empty
// or * fieldset selects all fields.
func NewProjection(fields []string, maxDepth int) ProjectionContext {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	pc := ProjectionContext{MaxDepth: maxDepth}
	for _, f := range fields {
		if f == "*" {
			return pc
		}
	}
	if len(fields) > 0 {
		pc.Fields = make(map[string]bool, len(fields))
		for _, f := range fields {
			pc.Fields[f] = true
		}
	}
	return pc
}

func (pc ProjectionContext) includes(field string) bool {
	return pc.Fields == nil || pc.Fields[field]
}

// child returns the context of the items of relation r.
func (pc ProjectionContext) child(r *schema.Relation) ProjectionContext {
	return ProjectionContext{
		Depth:                   pc.Depth + 1,
		MaxDepth:                pc.MaxDepth,
		HidePossibleTransitions: r.Shallow,
	}
}

// Project shapes e into a document: its selected attributes, then for each
// relation of s either the projected related items if they were hydrated and
// the depth allows it, or a fallback reference.
func (pc ProjectionContext) Project(s *schema.Schema, rc schema.SchemaResolver, e Entity) map[string]interface{} {
	doc := map[string]interface{}{}
	for _, name := range s.FieldNames() {
		if !pc.includes(name) {
			continue
		}
		v, _ := e.Value(name)
		doc[name] = v
	}
	for _, name := range s.RelationNames() {
		r := s.GetRelation(name)
		if r.Inert || r.Alias != "" {
			continue
		}
		related, loaded := e.Relation(name)
		if loaded && pc.Depth < pc.MaxDepth && !pc.HidePossibleTransitions {
			var target *schema.Schema
			if rc != nil {
				target = rc.ResolveSchema(r.Resource)
			}
			if target != nil {
				doc[name] = pc.child(r).projectRelated(target, rc, related)
				continue
			}
		}
		if fallback, ok := pc.fallback(r, e, related, loaded); ok {
			doc[name] = fallback
		}
	}
	return doc
}

func (pc ProjectionContext) projectRelated(s *schema.Schema, rc schema.SchemaResolver, related interface{}) interface{} {
	switch t := related.(type) {
	case Entity:
		return pc.Project(s, rc, t)
	case []Entity:
		list := make([]interface{}, 0, len(t))
		for _, e := range t {
			// Members are siblings: they all share the same context.
			list = append(list, pc.Project(s, rc, e))
		}
		return list
	}
	return nil
}

// fallback returns the reference emitted in place of a relation which is not
// expanded: the local key of a BelongsTo relation or the ids of a hydrated
// HasMany collection. A collection which was not hydrated is null when all
// fields are selected and left out of a sparse fieldset.
func (pc ProjectionContext) fallback(r *schema.Relation, e Entity, related interface{}, loaded bool) (interface{}, bool) {
	switch r.Kind {
	case schema.BelongsTo:
		if !loaded && !pc.includes(r.LocalKey) {
			return nil, false
		}
		v, _ := e.Value(r.LocalKey)
		return v, true
	case schema.HasMany:
		if !loaded {
			return nil, pc.Fields == nil
		}
		list, _ := related.([]Entity)
		ids := make([]interface{}, 0, len(list))
		for _, item := range list {
			id, _ := item.Value("id")
			ids = append(ids, id)
		}
		return ids, true
	}
	return nil, false
}
