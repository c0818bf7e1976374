package schema

import "strings"

// ErrorSlice contains a concatenation of several errors.
type ErrorSlice []error

// Append adds an error to err and returns a new slice if others is not nil. If
// other is another ErrorSlice it is extended so that all elements are appended.
func (err ErrorSlice) Append(other error) ErrorSlice {
	switch et := other.(type) {
	case nil:
		// don't append nil errors.
	case ErrorSlice:
		err = append(err, et...)
	default:
		err = append(err, et)
	}
	return err
}

func (err ErrorSlice) Error() string {
	sl := make([]string, 0, len(err))
	for _, err := range err {
		sl = append(sl, err.Error())
	}
	return strings.Join(sl, ", ")
}

// ErrOrNil returns nil when the slice is empty, err otherwise.
func (err ErrorSlice) ErrOrNil() error {
	if len(err) == 0 {
		return nil
	}
	return err
}
