package shaper

import "fmt"

// MalformedDataError reports a stored value that cannot be interpreted.
// Row is the zero-based position in the loader output.
type MalformedDataError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *MalformedDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: field %s: %q: %v", e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("row %d: field %s: %q", e.Row, e.Field, e.Value)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }
