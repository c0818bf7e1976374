package query

import "strings"

// Sort is a list of fields to sort on. The order of the list is the tie-break
// precedence, first wins.
type Sort []SortField

// SortField is a field to sort on.
type SortField struct {
	// Name is the name of the field to sort on.
	Name string

	// Reversed instruct to reverse the sorting if set to true.
	Reversed bool
}

// ParseSort parses a sort expression. A sort expression is a list of fields
// separated by comas. A field sort is reversed if preceded by a minus sign (-)
// and explicitly ascending if preceded by a plus sign (+). Empty elements are
// ignored.
func ParseSort(sort string) Sort {
	s := Sort{}
	for _, f := range splitList(sort) {
		s = append(s, parseSortField(f))
	}
	return s
}

func parseSortField(f string) SortField {
	sf := SortField{Name: f}
	switch f[0] {
	case '-':
		sf.Name = strings.TrimSpace(f[1:])
		sf.Reversed = true
	case '+':
		sf.Name = strings.TrimSpace(f[1:])
	}
	return sf
}

// String returns the sort in its query-string form.
func (s Sort) String() string {
	fields := make([]string, 0, len(s))
	for _, sf := range s {
		if sf.Reversed {
			fields = append(fields, "-"+sf.Name)
		} else {
			fields = append(fields, sf.Name)
		}
	}
	return strings.Join(fields, ",")
}
