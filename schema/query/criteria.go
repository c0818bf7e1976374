package query

// Operator is a predicate operator a criteria token maps to.
type Operator string

// Operators supported by the criteria tokens.
const (
	OpEqual          Operator = "="
	OpNotEqual       Operator = "!="
	OpLowerThan      Operator = "<"
	OpLowerOrEqual   Operator = "<="
	OpGreaterThan    Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpIn             Operator = "in"
	OpNotIn          Operator = "not in"
	OpLike           Operator = "like"
	OpBetween        Operator = "between"
)

// DefaultCriteria is the criteria token used when a filter is given without
// brackets.
const DefaultCriteria = "eq"

var criteria = map[string]Operator{
	"eq":      OpEqual,
	"ne":      OpNotEqual,
	"lt":      OpLowerThan,
	"lte":     OpLowerOrEqual,
	"gt":      OpGreaterThan,
	"gte":     OpGreaterOrEqual,
	"in":      OpIn,
	"nin":     OpNotIn,
	"lk":      OpLike,
	"between": OpBetween,
}

// LookupCriteria returns the operator for a criteria token.
func LookupCriteria(token string) (Operator, bool) {
	op, found := criteria[token]
	return op, found
}

// IsSet returns true if the operator applies to the whole list of values at
// once instead of once per value.
func (op Operator) IsSet() bool {
	return op == OpIn || op == OpNotIn || op == OpBetween
}
