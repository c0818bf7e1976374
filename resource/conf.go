package resource

// Conf defines the configuration for a given resource.
type Conf struct {
	// AllowedModes is the list of Mode allowed for the resource.
	AllowedModes []Mode
	// MaxDepth is the relation nesting level up to which hydrated relations are
	// expanded in the output documents. Defaults to query.DefaultMaxDepth.
	MaxDepth int
}

// Mode defines the read modes to be used with Conf.AllowedModes.
type Mode int

const (
	// Read mode represents the GET method on an item URL.
	Read Mode = iota
	// List mode represents the GET method on a collection URL.
	List
)

var (
	// ReadOnly is a shortcut for Read and List modes.
	ReadOnly = []Mode{Read, List}

	// DefaultConf defines a configuration with some sensible default parameters.
	DefaultConf = Conf{
		AllowedModes: ReadOnly,
		MaxDepth:     2,
	}
)

// IsModeAllowed returns true if the provided mode is allowed in the configuration.
func (c Conf) IsModeAllowed(mode Mode) bool {
	for _, m := range c.AllowedModes {
		if m == mode {
			return true
		}
	}
	return false
}
