package cable

import "math"

// patchCordCatalog lists the purchasable cord lengths in meters, ascending.
var patchCordCatalog = [...]float64{1.0, 1.5, 2.0, 3.0, 5.0, 7.5, 10.0, 15.0, 20.0}

// Catalog returns a copy of the patch-cord catalog.
func Catalog() []float64 {
	out := make([]float64, len(patchCordCatalog))
	copy(out, patchCordCatalog[:])
	return out
}

// MaxPatchCord is the longest cord in the catalog.
func MaxPatchCord() float64 {
	return patchCordCatalog[len(patchCordCatalog)-1]
}

// InCatalog reports whether length is one of the catalog lengths.
func InCatalog(length float64) bool {
	for _, opt := range patchCordCatalog {
		if opt == length {
			return true
		}
	}
	return false
}

// RoundUp returns the shortest cord that is at least length meters long.
// Lengths above the longest cord are clamped to it.
func RoundUp(length float64) float64 {
	for _, opt := range patchCordCatalog {
		if opt >= length {
			return opt
		}
	}
	return MaxPatchCord()
}

// RoundNearest returns the cord closest to length. Ties go to the longer cord.
func RoundNearest(length float64) float64 {
	best := patchCordCatalog[0]
	bestDist := math.Abs(best - length)
	for _, opt := range patchCordCatalog[1:] {
		d := math.Abs(opt - length)
		if d < bestDist || (d == bestDist && opt > best) {
			best, bestDist = opt, d
		}
	}
	return best
}
