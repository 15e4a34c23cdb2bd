package cable

import "math"

const (
	// MinUnit is the bottom slot of a rack.
	MinUnit = 1
	// MaxUnit is the top slot of a rack, where the cable channel starts.
	MaxUnit = 50

	// DefaultSafetyMarginMeters is added once to every cross-rack link.
	DefaultSafetyMarginMeters = 0.40
	// ExcessThresholdMeters is the over-provisioning gap above which a shorter
	// cord is tried. It is independent of the safety margin.
	ExcessThresholdMeters = 0.40
)

// ServerLocation is a server position: a row-relative rack index and a unit
// (1 = bottom, 50 = top).
type ServerLocation struct {
	Rack int `json:"rack" validate:"gt=0"`
	Unit int `json:"unit" validate:"gte=1,lte=50"`
}

// CableConfig holds the tunables of a calculation.
type CableConfig struct {
	// SafetyMarginMeters is added to cross-rack links only.
	SafetyMarginMeters float64 `json:"safety_margin_m" validate:"gte=0"`
}

// DefaultCableConfig returns the config used when none is supplied.
func DefaultCableConfig() CableConfig {
	return CableConfig{SafetyMarginMeters: DefaultSafetyMarginMeters}
}

// Validate checks that the margin is a finite non-negative distance.
func (c CableConfig) Validate() error {
	if math.IsNaN(c.SafetyMarginMeters) || math.IsInf(c.SafetyMarginMeters, 0) {
		return NewErrInvalidConfig("safety_margin_m", c.SafetyMarginMeters, "must be a finite number")
	}
	if err := validate.Struct(c); err != nil {
		return NewErrInvalidConfig("safety_margin_m", c.SafetyMarginMeters, "must not be negative")
	}
	return nil
}

// CableLengthBreakdown is the result of a calculation. All lengths are in meters.
type CableLengthBreakdown struct {
	SameRack             bool    `json:"same_rack"`
	VerticalA            float64 `json:"vertical_a_m"`
	VerticalB            float64 `json:"vertical_b_m"`
	Horizontal           float64 `json:"horizontal_m"`
	RawTotal             float64 `json:"raw_total_m"`
	SlackAdded           float64 `json:"slack_added_m"`
	RecommendedPatchCord float64 `json:"recommended_patch_cord_m"`
}
