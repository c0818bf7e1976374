package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DateFormat is the only format a filter value is recognized as a date in.
const DateFormat = "2006-01-02"

// Kind is the type tag of a Value.
type Kind int

// Value kinds.
const (
	StringValue Kind = iota
	NumberValue
	DateValue
)

// Value is a normalized filter value.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Date time.Time
}

// String returns a string value.
func String(s string) Value {
	return Value{Kind: StringValue, Str: s}
}

// Number returns a number value.
func Number(n float64) Value {
	return Value{Kind: NumberValue, Num: n}
}

// Date returns a date value truncated to the day.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{Kind: DateValue, Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ValueOf converts a stored attribute into a Value.
func ValueOf(v interface{}) Value {
	if n, ok := isNumber(v); ok {
		return Number(n)
	}
	switch t := v.(type) {
	case string:
		return String(t)
	case []byte:
		return String(string(t))
	case time.Time:
		return Date(t)
	case nil:
		return String("")
	default:
		return String(valueString(v))
	}
}

// IsBlank returns true for the empty string, the filterable form of an absent
// value.
func (v Value) IsBlank() bool {
	return v.Kind == StringValue && v.Str == ""
}

// Interface returns the value in a form suitable as a storage argument.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case NumberValue:
		if v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < 1<<53 {
			return int64(v.Num)
		}
		return v.Num
	case DateValue:
		return v.Date.Format(DateFormat)
	default:
		return v.Str
	}
}

// String returns the textual representation of the value.
func (v Value) String() string {
	switch v.Kind {
	case NumberValue:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case DateValue:
		return v.Date.Format(DateFormat)
	default:
		return v.Str
	}
}

// numeric matches what is lexically a number, leading and trailing
// whitespace included.
var numeric = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?[ \t\n\r\v\f]*$`)

// Normalize converts the raw value of a filter on field into a list of typed
// values. Every raw value is a coma separated list. When all its elements look
// numeric and text is false, the list is read as a JSON array of numbers;
// otherwise each element becomes a date if it is a strict YYYY-MM-DD calendar
// date or stays a string.
//
// The returned list is never empty.
func Normalize(field, raw string, text bool) ([]Value, error) {
	parts := strings.Split(raw, ",")
	if !text && allNumeric(parts) {
		var nums []float64
		if err := json.Unmarshal([]byte("["+raw+"]"), &nums); err != nil {
			return nil, &Error{Kind: MalformedFilterValue, Param: field, Identifier: raw}
		}
		values := make([]Value, 0, len(nums))
		for _, n := range nums {
			values = append(values, Number(n))
		}
		return values, nil
	}
	values := make([]Value, 0, len(parts))
	for _, p := range parts {
		values = append(values, normalizeOne(p))
	}
	return values, nil
}

func allNumeric(parts []string) bool {
	for _, p := range parts {
		if !numeric.MatchString(p) {
			return false
		}
	}
	return true
}

func normalizeOne(s string) Value {
	if len(s) == len(DateFormat) {
		if t, err := time.Parse(DateFormat, s); err == nil && t.Format(DateFormat) == s {
			return Date(t)
		}
	}
	return String(s)
}
