package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampFormat is the textual form of stored timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// isNumber takes an interface as input, and returns a float64 if the type is
// compatible (int* or float*).
func isNumber(n interface{}) (float64, bool) {
	switch n := n.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// valueString returns the unquoted textual form of a stored attribute.
func valueString(v interface{}) string {
	if n, ok := isNumber(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format(TimestampFormat)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// getField gets the value of a given field by supporting sub-field path. A get
// on field.subfield is equivalent to payload["field"]["subfield"].
func getField(payload map[string]interface{}, name string) interface{} {
	path := strings.SplitN(name, ".", 2)
	value, found := payload[path[0]]
	if !found {
		return nil
	}
	if len(path) == 2 {
		if sub, ok := value.(map[string]interface{}); ok {
			return getField(sub, path[1])
		}
		return nil
	}
	return value
}

// datePart returns the calendar day of a stored date or timestamp.
func datePart(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return Date(t).Date, true
	case string, []byte:
		s := valueString(t)
		if len(s) < len(DateFormat) {
			return time.Time{}, false
		}
		d, err := time.Parse(DateFormat, s[:len(DateFormat)])
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	}
	return time.Time{}, false
}

// CompareValues orders two stored attributes. Nil sorts first, numbers compare
// numerically, times chronologically and anything else by its textual form.
func CompareValues(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if na, ok := isNumber(a); ok {
		if nb, ok := isNumber(b); ok {
			return compareFloat(na, nb)
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			}
			return 0
		}
	}
	return strings.Compare(valueString(a), valueString(b))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareValue compares a stored attribute with a filter value. It returns
// false when the attribute is nil, mirroring SQL NULL comparisons.
func compareValue(stored interface{}, v Value) (int, bool) {
	if stored == nil {
		return 0, false
	}
	switch v.Kind {
	case NumberValue:
		if n, ok := isNumber(stored); ok {
			return compareFloat(n, v.Num), true
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(valueString(stored)), 64); err == nil {
			return compareFloat(n, v.Num), true
		}
		return strings.Compare(valueString(stored), v.String()), true
	case DateValue:
		return strings.Compare(valueString(stored), v.String()), true
	default:
		if n, ok := isNumber(stored); ok {
			if f, err := strconv.ParseFloat(v.Str, 64); err == nil {
				return compareFloat(n, f), true
			}
		}
		return strings.Compare(valueString(stored), v.Str), true
	}
}

func applyOp(op Operator, c int) bool {
	switch op {
	case OpEqual:
		return c == 0
	case OpNotEqual:
		return c != 0
	case OpLowerThan:
		return c < 0
	case OpLowerOrEqual:
		return c <= 0
	case OpGreaterThan:
		return c > 0
	case OpGreaterOrEqual:
		return c >= 0
	}
	return false
}
