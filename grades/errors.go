package grades

import (
	"fmt"
)

// InvalidInputError reports a row that cannot be evaluated. Row is the 1-based
// offset of the row within the input range, or 0 if unknown.
type InvalidInputError struct {
	Row   int
	Field string
	Value any
	Err   error
}

func (e *InvalidInputError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %v: invalid %v '%v' (%v)", e.Row, e.Field, e.Value, e.Err)
	}

	return fmt.Sprintf("invalid %v '%v' (%v)", e.Field, e.Value, e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}
