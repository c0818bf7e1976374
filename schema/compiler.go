package schema

// Compiler is implemented by types that must be checked once the whole
// resource graph is known.
type Compiler interface {
	Compile(rc SchemaResolver) error
}

// SchemaResolver gives access to the schema of other resources so relations
// can be checked at startup.
type SchemaResolver interface {
	// ResolveSchema returns the schema bound to the resource name or nil if no
	// resource matches.
	ResolveSchema(name string) *Schema
}

// SchemaResolverFunc is an adapter that allows ordinary functions to be used
// as schema resolvers.
type SchemaResolverFunc func(name string) *Schema

// ResolveSchema calls f(name).
func (f SchemaResolverFunc) ResolveSchema(name string) *Schema {
	return f(name)
}
