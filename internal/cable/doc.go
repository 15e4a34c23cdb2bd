// Package cable computes the recommended patch-cord length between two server
// positions in a rack row.
//
// A link inside one rack is sized from a step table keyed by the unit distance.
// A link between racks is the sum of a vertical run up rack A, a horizontal run
// along the cable channel, a vertical run down rack B and a safety margin.
// Both paths are rounded up to the fixed patch-cord catalog.
package cable
