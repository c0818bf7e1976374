package query

import "math"

// Pagination defaults. The maximum page size is enforced by PageRule, not by
// the compiler.
var (
	DefaultPageSize = 30
	MaxPageSize     = 100
)

// Page is the requested page of the result set.
type Page struct {
	// Number is the 1 based page number.
	Number int

	// Size is the number of items per page.
	Size int
}

// Window returns the window the page covers. The offset saturates at
// math.MaxInt for pages too far to be addressed, which then select nothing.
func (p Page) Window() *Window {
	number, size := p.Number, p.Size
	if number < 1 {
		number = 1
	}
	if size < 0 {
		size = 0
	}
	offset := math.MaxInt
	if size == 0 || number-1 <= math.MaxInt/size {
		offset = (number - 1) * size
	}
	return &Window{
		Offset: offset,
		Limit:  size,
	}
}

// Window defines a view on the resulting payload.
type Window struct {
	// Offset is the 0 based index of the item in the result set to start the
	// window at.
	Offset int

	// Limit is the maximum number of items to return in the result set. A value
	// lower than 0 means no limit.
	Limit int
}
