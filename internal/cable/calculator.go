package cable

import "math"

const (
	// verticalMetersPerUnit is the vertical run per rack unit (4 cm).
	verticalMetersPerUnit = 0.04
	// channelCMPerRackGap is the channel run per rack crossed.
	channelCMPerRackGap = 50
	// channelAllowanceCM covers entering and leaving the channel.
	channelAllowanceCM = 100
	// rackBAllowanceCM is the drop into rack B: 70 cm routing plus 30 cm to the port.
	rackBAllowanceCM = 70 + 30
	// nearTopUnits is how close to the top a server in rack B gets the flat length.
	nearTopUnits = 2
	// nearTopMeters is the flat length for a server near the top of rack B.
	nearTopMeters = 0.5

	// precision drops float noise below a micrometre so that table values
	// such as 4.9 compare exactly.
	precision = 1e6
	// epsilon absorbs float noise in the threshold comparison.
	epsilon = 1e-9
)

// sameRackSteps maps the unit distance inside a rack to a cable length.
var sameRackSteps = []struct {
	maxDelta int
	meters   float64
}{
	{2, 0.5},
	{8, 1.0},
	{15, 1.5},
	{23, 2.0},
	{37, 2.5},
	{MaxUnit, 3.0},
}

// ComputeBreakdown computes the cable length between two servers.
// A nil cfg means DefaultCableConfig.
func ComputeBreakdown(a, b ServerLocation, cfg *CableConfig) (CableLengthBreakdown, error) {
	config := DefaultCableConfig()
	if cfg != nil {
		config = *cfg
	}
	if err := config.Validate(); err != nil {
		return CableLengthBreakdown{}, err
	}
	if err := validateLocation("A", a); err != nil {
		return CableLengthBreakdown{}, err
	}
	if err := validateLocation("B", b); err != nil {
		return CableLengthBreakdown{}, err
	}

	var res CableLengthBreakdown
	if a.Rack == b.Rack {
		raw := sameRackLength(a.Unit, b.Unit)
		res = CableLengthBreakdown{
			SameRack:  true,
			VerticalA: raw, // the whole run is shown as one vertical segment
			RawTotal:  raw,
		}
	} else {
		va := verticalRackA(a.Unit)
		h := channelLength(a.Rack, b.Rack)
		vb := verticalRackB(b.Unit)
		res = CableLengthBreakdown{
			VerticalA:  va,
			Horizontal: h,
			VerticalB:  vb,
			RawTotal:   normalize(va + h + vb + config.SafetyMarginMeters),
			SlackAdded: config.SafetyMarginMeters,
		}
	}

	res.RecommendedPatchCord = recommend(res.RawTotal)
	return res, nil
}

// ComputeRecommendedLength returns only the recommended cord length.
func ComputeRecommendedLength(a, b ServerLocation, cfg *CableConfig) (float64, error) {
	res, err := ComputeBreakdown(a, b, cfg)
	if err != nil {
		return 0, err
	}
	return res.RecommendedPatchCord, nil
}

func sameRackLength(unitA, unitB int) float64 {
	delta := unitA - unitB
	if delta < 0 {
		delta = -delta
	}
	for _, step := range sameRackSteps {
		if delta <= step.maxDelta {
			return step.meters
		}
	}
	return sameRackSteps[len(sameRackSteps)-1].meters
}

// verticalRackA is the run from the server up to the top channel.
func verticalRackA(unit int) float64 {
	return normalize(verticalMetersPerUnit * float64(MaxUnit-unit))
}

// channelLength is the run along the channel between two racks.
func channelLength(rackA, rackB int) float64 {
	gap := rackB - rackA
	if gap < 0 {
		gap = -gap
	}
	if gap == 0 {
		return 0
	}
	return normalize(float64(gap*channelCMPerRackGap+channelAllowanceCM) / 100)
}

// verticalRackB is the run from the channel down to the server.
func verticalRackB(unit int) float64 {
	fromTop := MaxUnit - unit
	if fromTop <= nearTopUnits {
		return nearTopMeters
	}
	return normalize(float64(4*fromTop+rackBAllowanceCM) / 100)
}

// recommend rounds raw up to the catalog and then tries one shorter cord when
// the round-up over-provisions by at least ExcessThresholdMeters.
func recommend(raw float64) float64 {
	recommended := RoundUp(raw)
	if recommended-raw >= ExcessThresholdMeters-epsilon {
		shorter := RoundNearest(recommended - ExcessThresholdMeters)
		if shorter >= raw {
			recommended = shorter
		}
	}
	return recommended
}

func normalize(v float64) float64 {
	return math.Round(v*precision) / precision
}
