package rackplan

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultRangeStart = "02b03"
	DefaultRangeEnd   = "02b18"
)

// Directory maps human-readable rack codes to row-relative indices.
type Directory interface {
	RackIndex(ctx context.Context, code string) (int, error)
	List(ctx context.Context) ([]RackInfo, error)
}

// RackInfo is a rack of the row and its position along it (1, 2, 3, ...).
type RackInfo struct {
	Code  string `json:"code" yaml:"code"`
	Index int    `json:"index" yaml:"index"`
}

// Range bounds the rack codes of interest, both ends inclusive.
type Range struct {
	Start string
	End   string
}

func DefaultRange() Range {
	return Range{Start: DefaultRangeStart, End: DefaultRangeEnd}
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Validate checks that both ends share a prefix and are ordered.
func (r Range) Validate() error {
	pStart, nStart := ParseRackCode(r.Start)
	pEnd, nEnd := ParseRackCode(r.End)
	if !strings.EqualFold(pStart, pEnd) {
		return fmt.Errorf("rack range %s: start and end have different prefixes", r)
	}
	if nStart <= 0 || nEnd < nStart {
		return fmt.Errorf("rack range %s: invalid bounds", r)
	}
	return nil
}

// Contains reports whether code has the range prefix and a number within bounds.
func (r Range) Contains(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	pCode, nCode := ParseRackCode(code)
	pStart, nStart := ParseRackCode(r.Start)
	pEnd, nEnd := ParseRackCode(r.End)
	if !strings.EqualFold(pCode, pStart) || !strings.EqualFold(pCode, pEnd) {
		return false
	}
	return nStart <= nCode && nCode <= nEnd
}

// ParseRackCode splits a code such as "02b05" into its prefix ("02b") and
// number (5). The number is 0 when the code is too short or the last two
// characters are not digits.
func ParseRackCode(code string) (string, int) {
	code = strings.TrimSpace(code)
	if len(code) < 4 {
		return code, 0
	}
	prefix := code[:len(code)-2]
	number, err := strconv.Atoi(code[len(code)-2:])
	if err != nil || number < 0 {
		return prefix, 0
	}
	return prefix, number
}
