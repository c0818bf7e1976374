package query

import (
	"strconv"
	"strings"
)

// Predicate is a list of expressions joined with a logical AND.
type Predicate []Expression

// Match implements Expression interface.
func (e Predicate) Match(payload map[string]interface{}) bool {
	for _, exp := range e {
		if !exp.Match(payload) {
			return false
		}
	}
	return true
}

// String implements Expression interface.
func (e Predicate) String() string {
	if len(e) == 0 {
		return "{}"
	}
	s := make([]string, 0, len(e))
	for _, exp := range e {
		s = append(s, exp.String())
	}
	return "{" + strings.Join(s, " AND ") + "}"
}

// Expression is a predicate component that can be matched against a payload.
// Storage handlers translate expressions into their own query language and
// may use Match to filter in memory.
type Expression interface {
	Match(payload map[string]interface{}) bool
	String() string
}

// Compare matches values comparing with Op to a specified value. A nil value
// never matches. On an array value, equality matches on membership.
type Compare struct {
	Field string
	Op    Operator
	Value Value
}

// Match implements Expression interface.
func (e Compare) Match(payload map[string]interface{}) bool {
	stored := getField(payload, e.Field)
	if list, ok := stored.([]interface{}); ok {
		found := contains(list, e.Value)
		switch e.Op {
		case OpEqual:
			return found
		case OpNotEqual:
			return !found
		}
		return false
	}
	c, ok := compareValue(stored, e.Value)
	return ok && applyOp(e.Op, c)
}

// String implements Expression interface.
func (e Compare) String() string {
	return e.Field + " " + string(e.Op) + " " + quoteValue(e.Value)
}

// In matches any of the values specified.
type In struct {
	Field  string
	Values []Value
}

// Match implements Expression interface.
func (e In) Match(payload map[string]interface{}) bool {
	stored := getField(payload, e.Field)
	if list, ok := stored.([]interface{}); ok {
		for _, v := range e.Values {
			if contains(list, v) {
				return true
			}
		}
		return false
	}
	for _, v := range e.Values {
		if c, ok := compareValue(stored, v); ok && c == 0 {
			return true
		}
	}
	return false
}

// String implements Expression interface.
func (e In) String() string {
	return e.Field + " " + string(OpIn) + " " + quoteValues(e.Values)
}

// NotIn matches none of the values specified. A nil value never matches.
type NotIn struct {
	Field  string
	Values []Value
}

// Match implements Expression interface.
func (e NotIn) Match(payload map[string]interface{}) bool {
	stored := getField(payload, e.Field)
	if stored == nil {
		return false
	}
	if list, ok := stored.([]interface{}); ok {
		for _, v := range e.Values {
			if contains(list, v) {
				return false
			}
		}
		return true
	}
	for _, v := range e.Values {
		if c, _ := compareValue(stored, v); c == 0 {
			return false
		}
	}
	return true
}

// String implements Expression interface.
func (e NotIn) String() string {
	return e.Field + " " + string(OpNotIn) + " " + quoteValues(e.Values)
}

// DateCompare matches the calendar day of a date or timestamp value comparing
// with Op to a specified date.
type DateCompare struct {
	Field string
	Op    Operator
	Value Value
}

// Match implements Expression interface.
func (e DateCompare) Match(payload map[string]interface{}) bool {
	d, ok := datePart(getField(payload, e.Field))
	if !ok {
		return false
	}
	if e.Op == OpLike {
		return MatchLike(e.Value.String(), d.Format(DateFormat))
	}
	return applyOp(e.Op, CompareValues(d, e.Value.Date))
}

// String implements Expression interface.
func (e DateCompare) String() string {
	return "date(" + e.Field + ") " + string(e.Op) + " " + quoteValue(e.Value)
}

// Blank matches a nil or blank value. With Negate, it matches any non nil
// value.
type Blank struct {
	Field  string
	Negate bool
}

// Match implements Expression interface.
func (e Blank) Match(payload map[string]interface{}) bool {
	stored := getField(payload, e.Field)
	if e.Negate {
		return stored != nil
	}
	return stored == nil || valueString(stored) == ""
}

// String implements Expression interface.
func (e Blank) String() string {
	if e.Negate {
		return "(" + e.Field + " IS NOT NULL OR " + e.Field + " != \"\")"
	}
	return "(" + e.Field + " IS NULL OR " + e.Field + " = \"\")"
}

// Like matches values against an escaped like pattern, case insensitively.
type Like struct {
	Field   string
	Pattern string
}

// Match implements Expression interface.
func (e Like) Match(payload map[string]interface{}) bool {
	stored := getField(payload, e.Field)
	if stored == nil {
		return false
	}
	return MatchLike(e.Pattern, valueString(stored))
}

// String implements Expression interface.
func (e Like) String() string {
	return e.Field + " " + string(OpLike) + " " + strconv.Quote(e.Pattern)
}

func contains(list []interface{}, v Value) bool {
	for _, item := range list {
		if c, ok := compareValue(item, v); ok && c == 0 {
			return true
		}
	}
	return false
}

func quoteValue(v Value) string {
	if v.Kind == NumberValue {
		return v.String()
	}
	return strconv.Quote(v.String())
}

func quoteValues(values []Value) string {
	s := make([]string, 0, len(values))
	for _, v := range values {
		s = append(s, quoteValue(v))
	}
	return "[" + strings.Join(s, ", ") + "]"
}
