package resource

import (
	"fmt"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema"
)

// Index is an interface defining a type able to bind and retrieve resources
// from a resource graph.
type Index interface {
	// Bind a new resource at the "name" endpoint
	Bind(name string, s *schema.Schema, h Storer, c Conf) *Resource
	// GetResource retrieves a given resource by its name.
	GetResource(name string) (*Resource, bool)
	// GetResources returns the bound resources
	GetResources() []*Resource
	// ResolveSchema returns the schema of the resource bound as name.
	ResolveSchema(name string) *schema.Schema
}

// Compiler is an interface defining a type able to check its resource graph
// once all the resources are bound.
type Compiler interface {
	Compile() error
}

// index is the root of the resource graph
type index struct {
	resources subResources
}

type subResources []*Resource

func (sr subResources) get(name string) *Resource {
	for _, r := range sr {
		if r.name == name {
			return r
		}
	}
	return nil
}

// NewIndex creates a new resource index
func NewIndex() Index {
	return &index{
		resources: subResources{},
	}
}

// Bind a resource at the specified endpoint name
func (r *index) Bind(name string, s *schema.Schema, h Storer, c Conf) *Resource {
	assertNotBound(name, r.resources)
	sr := newResource(name, s, h, c)
	sr.index = r
	r.resources = append(r.resources, sr)
	return sr
}

// Compile the resource graph and report any error
func (r *index) Compile() error {
	for _, sr := range r.resources {
		if err := sr.Compile(r); err != nil {
			return fmt.Errorf("%s: %s", sr.name, err)
		}
	}
	return nil
}

// GetResource retrieves a given resource by its name.
func (r *index) GetResource(name string) (*Resource, bool) {
	if sr := r.resources.get(name); sr != nil {
		return sr, true
	}
	return nil, false
}

// GetResources returns the bound resources
func (r *index) GetResources() []*Resource {
	return r.resources
}

// ResolveSchema implements schema.SchemaResolver interface.
func (r *index) ResolveSchema(name string) *schema.Schema {
	if sr := r.resources.get(name); sr != nil {
		return sr.schema
	}
	return nil
}

// assertNotBound asserts a given resource name is not already bound
func assertNotBound(name string, resources subResources) {
	if resources.get(name) != nil {
		logPanicf(nil, "Cannot bind `%s': already bound as resource'", name)
	}
}
