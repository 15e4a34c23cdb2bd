package rackplan

import (
	"errors"
	"fmt"
)

var (
	ErrNoRackColumn = errors.New("no rack column found in the sheet header")
	ErrEmptyPlan    = errors.New("no rack found in range")
)

type ErrUnknownRackCode struct {
	error
	Code string
}

func NewErrUnknownRackCode(code string) *ErrUnknownRackCode {
	return &ErrUnknownRackCode{
		error: fmt.Errorf("rack with code '%s' not found in the loaded plan", code),
		Code:  code,
	}
}
