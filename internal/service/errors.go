package service

import (
	"fmt"
)

type ErrUnknownRack struct {
	error
	Code string
}

func NewErrUnknownRack(code string) *ErrUnknownRack {
	return &ErrUnknownRack{
		error: fmt.Errorf("unknown rack code '%s'", code),
		Code:  code,
	}
}

type ErrInvalidRequest struct {
	error
}

func NewErrInvalidRequest(message string) *ErrInvalidRequest {
	return &ErrInvalidRequest{fmt.Errorf("invalid request: %s", message)}
}

func NewErrNegativeSlack(key string, value float64) *ErrInvalidRequest {
	return NewErrInvalidRequest(fmt.Sprintf("%s must be a non-negative number, got %g", key, value))
}

// ErrBatchLink reports which link of a batch failed. The cause stays
// reachable through errors.As.
type ErrBatchLink struct {
	error
	Index int
}

func NewErrBatchLink(index int, cause error) *ErrBatchLink {
	return &ErrBatchLink{
		error: fmt.Errorf("link %d: %w", index, cause),
		Index: index,
	}
}

func (e *ErrBatchLink) Unwrap() error {
	return e.error
}
