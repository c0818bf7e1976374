package schema

import "strings"

// Fields defines a map of name -> field pairs.
type Fields map[string]Field

// FieldType declares how raw filter values for a field are interpreted.
type FieldType int

const (
	// Auto lets the value decide: numeric lists become numbers, strict
	// YYYY-MM-DD values become dates and everything else stays a string.
	Auto FieldType = iota
	// Text fields never get their values reinterpreted as numbers, even when
	// they look numeric (codes, keys, names).
	Text
	// Number fields hold numeric values.
	Number
	// Date fields hold calendar dates or timestamps.
	Date
)

// textFieldNames lists field names treated as Text when declared Auto.
var textFieldNames = map[string]bool{
	"code": true,
	"name": true,
}

func (t FieldType) String() string {
	switch t {
	case Text:
		return "text"
	case Number:
		return "number"
	case Date:
		return "date"
	default:
		return "auto"
	}
}

// Field specifies the info for a single public attribute of a resource.
type Field struct {
	// Description stores a short description of the field useful for automatic
	// documentation generation.
	Description string
	// Type declares how filter values are coerced for this field. See
	// FieldType.
	Type FieldType
	// ArrayFilterable marks a field storing a list of values. Equality and set
	// filters on such a field match on membership instead of on the whole
	// value.
	ArrayFilterable bool
}

// IsText returns true if filter values on the field named name must be kept
// as strings even when they look numeric.
func (f Field) IsText(name string) bool {
	if f.Type == Text {
		return true
	}
	return f.Type == Auto && textFieldNames[strings.ToLower(name)]
}
