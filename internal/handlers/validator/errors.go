package validator

import (
	"fmt"
)

// ErrValidation carries the first rejected field of a request, named by its
// JSON path.
type ErrValidation struct {
	error
	Field string
}

func NewErrValidation(field, format string, args ...any) *ErrValidation {
	return &ErrValidation{
		error: fmt.Errorf("%s: %s", field, fmt.Sprintf(format, args...)),
		Field: field,
	}
}
