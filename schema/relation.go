package schema

import "strings"

// RelationKind defines how two resources are linked.
type RelationKind int

const (
	// BelongsTo links an item to a single owner item: this.LocalKey references
	// target.OwnerKey.
	BelongsTo RelationKind = iota
	// HasMany links an item to a collection: target.ForeignKey references
	// this.LocalKey.
	HasMany
)

func (k RelationKind) String() string {
	if k == HasMany {
		return "has-many"
	}
	return "belongs-to"
}

// Relations defines a map of name -> relation pairs.
type Relations map[string]Relation

// Relation describes a relation a client may hydrate with the relations
// parameter.
type Relation struct {
	// Description stores a short description of the relation.
	Description string
	// Resource is the name of the related resource.
	Resource string
	// Kind is the relation cardinality.
	Kind RelationKind
	// LocalKey is the key on this resource. For BelongsTo it is the foreign key
	// column, emitted in place of the relation when it is not expanded. For
	// HasMany it defaults to "id".
	LocalKey string
	// ForeignKey is the column of the related resource referencing LocalKey
	// (HasMany only).
	ForeignKey string
	// OwnerKey is the column of the related resource referenced by LocalKey
	// (BelongsTo only). Defaults to "id".
	OwnerKey string
	// Alias substitutes another eager-load path when the relation is
	// requested. The path may be dotted to load nested relations
	// (i.e.: "time_entries.jira_issue").
	Alias string
	// Inert marks a relation that is accepted in the relations parameter but
	// never hydrated.
	Inert bool
	// Shallow hides relations of the related items when projected, keeping
	// collections one level deep.
	Shallow bool
}

// Owner returns the owner key of a BelongsTo relation.
func (r Relation) Owner() string {
	if r.OwnerKey == "" {
		return "id"
	}
	return r.OwnerKey
}

// Local returns the local key of the relation.
func (r Relation) Local() string {
	if r.LocalKey == "" {
		return "id"
	}
	return r.LocalKey
}

// Resolve returns the eager-load path the relation stands for, or false if the
// relation is inert.
func (r Relation) Resolve(name string) (string, bool) {
	if r.Inert {
		return "", false
	}
	if r.Alias != "" {
		return r.Alias, true
	}
	return name, true
}

// Proxies defines a map of target field -> proxy pairs.
type Proxies map[string]Proxy

// Proxy renames the filter parameter Mediate onto the field it is bound to.
type Proxy struct {
	Mediate string
}

// splitRelationPath splits a dotted eager-load path on its first dot.
func splitRelationPath(path string) (string, string) {
	if i := strings.IndexByte(path, '.'); i != -1 {
		return path[:i], path[i+1:]
	}
	return path, ""
}
