package rackplan

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Compile-time assertion that Plan implements the Directory interface.
var _ Directory = (*Plan)(nil)

// Plan is an immutable in-memory rack directory.
type Plan struct {
	racks  []RackInfo
	byCode map[string]RackInfo
}

// NewPlan builds a plan from codes: duplicates are dropped, the rest is
// sorted by rack number and indexed from 1.
func NewPlan(codes []string) *Plan {
	seen := make(map[string]struct{}, len(codes))
	unique := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		_, ni := ParseRackCode(unique[i])
		_, nj := ParseRackCode(unique[j])
		return ni < nj
	})

	racks := make([]RackInfo, 0, len(unique))
	for i, c := range unique {
		racks = append(racks, RackInfo{Code: c, Index: i + 1})
	}
	return FromRacks(racks)
}

// FromRacks wraps racks that already carry their indices.
func FromRacks(racks []RackInfo) *Plan {
	p := &Plan{
		racks:  make([]RackInfo, len(racks)),
		byCode: make(map[string]RackInfo, len(racks)),
	}
	copy(p.racks, racks)
	sort.SliceStable(p.racks, func(i, j int) bool { return p.racks[i].Index < p.racks[j].Index })
	for _, r := range p.racks {
		p.byCode[r.Code] = r
	}
	return p
}

// DefaultPlan generates every code of the range without reading a spreadsheet.
// An inverted range yields an empty plan.
func DefaultPlan(r Range) *Plan {
	prefix, start := ParseRackCode(r.Start)
	_, end := ParseRackCode(r.End)
	if end < start {
		return FromRacks(nil)
	}

	racks := make([]RackInfo, 0, end-start+1)
	idx := 1
	for n := start; n <= end; n++ {
		racks = append(racks, RackInfo{Code: fmt.Sprintf("%s%02d", prefix, n), Index: idx})
		idx++
	}
	return FromRacks(racks)
}

func (p *Plan) RackIndex(_ context.Context, code string) (int, error) {
	code = strings.TrimSpace(code)
	info, ok := p.byCode[code]
	if !ok {
		return 0, NewErrUnknownRackCode(code)
	}
	return info.Index, nil
}

func (p *Plan) List(_ context.Context) ([]RackInfo, error) {
	out := make([]RackInfo, len(p.racks))
	copy(out, p.racks)
	return out, nil
}

func (p *Plan) Len() int {
	return len(p.racks)
}
