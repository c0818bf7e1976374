// Package schema provides the declarative descriptor of a resource: its
// public attributes, the relations a client may hydrate and the filter keys
// proxied onto concrete columns.
//
// A descriptor is pure data defined at startup and shared by the generic
// query compiler, validators and projector; no per-resource code is needed.
package schema

import (
	"fmt"
	"sort"
)

// Reserved parameter names that can't be used as proxy mediated names.
var reserved = map[string]bool{
	"fields":    true,
	"relations": true,
	"sort":      true,
	"page":      true,
	"page_size": true,
}

// Schema defines the public surface of a resource.
type Schema struct {
	// Name is the resource name, used in error messages.
	Name string
	// Description of the resource used for documentation.
	Description string
	// Table is the storage table or collection name. Defaults to Name.
	Table string
	// Fields are the public attributes: the only names accepted in the fields,
	// sort and filter parameters.
	Fields Fields
	// Relations are the only names accepted in the relations parameter.
	Relations Relations
	// Proxies maps a field onto an alternate filter parameter name.
	Proxies Proxies

	names     []string
	relations []string
	mediated  map[string]string
}

// TableName returns the storage table name of the resource.
func (s *Schema) TableName() string {
	if s.Table != "" {
		return s.Table
	}
	return s.Name
}

// GetField returns the public attribute named name or nil if not found.
func (s *Schema) GetField(name string) *Field {
	if s == nil {
		return nil
	}
	if f, found := s.Fields[name]; found {
		return &f
	}
	return nil
}

// GetRelation returns the relation named name or nil if not found.
func (s *Schema) GetRelation(name string) *Relation {
	if s == nil {
		return nil
	}
	if r, found := s.Relations[name]; found {
		return &r
	}
	return nil
}

// Mediated returns the field a proxied filter parameter stands for.
func (s *Schema) Mediated(param string) (string, bool) {
	if s.mediated != nil {
		field, found := s.mediated[param]
		return field, found
	}
	for field, p := range s.Proxies {
		if p.Mediate == param {
			return field, true
		}
	}
	return "", false
}

// FieldNames returns the sorted list of public attribute names.
func (s *Schema) FieldNames() []string {
	if s.names == nil {
		return sortedKeys(s.Fields)
	}
	return s.names
}

// RelationNames returns the sorted list of relation names.
func (s *Schema) RelationNames() []string {
	if s.relations == nil {
		names := make([]string, 0, len(s.Relations))
		for name := range s.Relations {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}
	return s.relations
}

// Compile checks the descriptor against the rest of the resource graph and
// resolves its lookup tables. It must be called once, before the schema is
// shared between requests.
func (s *Schema) Compile(rc SchemaResolver) error {
	var errs ErrorSlice
	s.names = sortedKeys(s.Fields)
	s.mediated = map[string]string{}
	for field, p := range s.Proxies {
		if _, found := s.Fields[field]; !found {
			errs = errs.Append(fmt.Errorf("proxy %s: unknown field", field))
		}
		if p.Mediate == "" || reserved[p.Mediate] {
			errs = errs.Append(fmt.Errorf("proxy %s: invalid mediated name %q", field, p.Mediate))
		}
		s.mediated[p.Mediate] = field
	}
	s.relations = make([]string, 0, len(s.Relations))
	for name, r := range s.Relations {
		s.relations = append(s.relations, name)
		if err := s.compileRelation(name, r, rc); err != nil {
			errs = errs.Append(fmt.Errorf("relation %s: %v", name, err))
		}
	}
	sort.Strings(s.relations)
	return errs.ErrOrNil()
}

func (s *Schema) compileRelation(name string, r Relation, rc SchemaResolver) error {
	if r.Inert {
		return nil
	}
	if r.Alias != "" {
		head, _ := splitRelationPath(r.Alias)
		target, found := s.Relations[head]
		if !found {
			return fmt.Errorf("alias %s: unknown relation %s", r.Alias, head)
		}
		if target.Alias != "" {
			return fmt.Errorf("alias %s: alias chains are not supported", r.Alias)
		}
		return nil
	}
	var target *Schema
	if rc != nil {
		if target = rc.ResolveSchema(r.Resource); target == nil {
			return fmt.Errorf("unknown resource %s", r.Resource)
		}
	}
	switch r.Kind {
	case BelongsTo:
		if s.GetField(r.LocalKey) == nil {
			return fmt.Errorf("local key %s: unknown field", r.LocalKey)
		}
		if target != nil && target.GetField(r.Owner()) == nil {
			return fmt.Errorf("owner key %s: unknown field in %s", r.Owner(), r.Resource)
		}
	case HasMany:
		if s.GetField(r.Local()) == nil {
			return fmt.Errorf("local key %s: unknown field", r.Local())
		}
		if target != nil && target.GetField(r.ForeignKey) == nil {
			return fmt.Errorf("foreign key %s: unknown field in %s", r.ForeignKey, r.Resource)
		}
	default:
		return fmt.Errorf("invalid kind %d", r.Kind)
	}
	return nil
}

func sortedKeys(fields Fields) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
