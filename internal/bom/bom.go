// Package bom aggregates computed links into a bill of materials: how many
// patch cords of each catalog length a cabling job needs.
package bom

import (
	"math"
	"sort"

	"github.com/kubev2v/patchcord-planner/internal/cable"
)

// Line is the demand for one catalog length.
type Line struct {
	LengthMeters float64 `json:"length_m" yaml:"length_m"`
	Count        int     `json:"count" yaml:"count"`
	TotalMeters  float64 `json:"total_m" yaml:"total_m"`
}

type BillOfMaterials struct {
	Lines          []Line  `json:"lines" yaml:"lines"`
	TotalCords     int     `json:"total_cords" yaml:"total_cords"`
	TotalMeters    float64 `json:"total_m" yaml:"total_m"`
	SameRackLinks  int     `json:"same_rack_links" yaml:"same_rack_links"`
	CrossRackLinks int     `json:"cross_rack_links" yaml:"cross_rack_links"`
}

// Builder accumulates links. The zero value is not usable, call NewBuilder.
type Builder struct {
	counts    map[float64]int
	sameRack  int
	crossRack int
}

func NewBuilder() *Builder {
	return &Builder{counts: make(map[float64]int)}
}

// Add records the cord recommended for one link.
func (b *Builder) Add(breakdown cable.CableLengthBreakdown) {
	b.counts[breakdown.RecommendedPatchCord]++
	if breakdown.SameRack {
		b.sameRack++
	} else {
		b.crossRack++
	}
}

// Build returns the bill with lines ordered by ascending cord length.
func (b *Builder) Build() BillOfMaterials {
	lengths := make([]float64, 0, len(b.counts))
	for l := range b.counts {
		lengths = append(lengths, l)
	}
	sort.Float64s(lengths)

	bill := BillOfMaterials{
		Lines:          make([]Line, 0, len(lengths)),
		SameRackLinks:  b.sameRack,
		CrossRackLinks: b.crossRack,
	}
	for _, l := range lengths {
		n := b.counts[l]
		line := Line{LengthMeters: l, Count: n, TotalMeters: round(l * float64(n))}
		bill.Lines = append(bill.Lines, line)
		bill.TotalCords += n
		bill.TotalMeters += line.TotalMeters
	}
	bill.TotalMeters = round(bill.TotalMeters)
	return bill
}

// Aggregate builds the bill for breakdowns in one call.
func Aggregate(breakdowns []cable.CableLengthBreakdown) BillOfMaterials {
	b := NewBuilder()
	for _, br := range breakdowns {
		b.Add(br)
	}
	return b.Build()
}

func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
