package v1alpha1

// ServerEndpoint is one end of a link.
type ServerEndpoint struct {
	RackCode string  `json:"rack_code" validate:"required,rack_code"`
	Unit     int     `json:"unit" validate:"gte=1,lte=50"`
	Hostname *string `json:"hostname,omitempty" validate:"omitempty,server_hostname"`
}

// CalculationConfig overrides the cross-rack slack. SafetySlackCm wins when
// both are set.
type CalculationConfig struct {
	SafetySlackCm   *float64 `json:"safety_slack_cm,omitempty" validate:"omitempty,slack"`
	CrossRackSlackM *float64 `json:"cross_rack_slack_m,omitempty" validate:"omitempty,slack"`
}

type CalculationRequest struct {
	ServerA ServerEndpoint     `json:"server_a"`
	ServerB ServerEndpoint     `json:"server_b"`
	Config  *CalculationConfig `json:"config,omitempty"`
}

// ResolvedServer echoes an endpoint with its position in the row.
type ResolvedServer struct {
	RackCode  string  `json:"rack_code"`
	RackIndex int     `json:"rack_index"`
	Unit      int     `json:"unit"`
	Hostname  *string `json:"hostname,omitempty"`
}

type CalculationResponse struct {
	// LengthM is the computed run before rounding to a catalog cord.
	LengthM               float64        `json:"length_m"`
	RecommendedPatchCordM float64        `json:"recommended_patch_cord_m"`
	SameRack              bool           `json:"same_rack"`
	VerticalAM            float64        `json:"vertical_a_m"`
	VerticalBM            float64        `json:"vertical_b_m"`
	HorizontalM           float64        `json:"horizontal_m"`
	RawTotalM             float64        `json:"raw_total_m"`
	SlackAddedM           float64        `json:"slack_added_m"`
	ServerA               ResolvedServer `json:"server_a"`
	ServerB               ResolvedServer `json:"server_b"`
}

type BatchCalculationRequest struct {
	Links []CalculationRequest `json:"links" validate:"required,min=1,max=1000,dive"`
}

type BillOfMaterialsLine struct {
	LengthM float64 `json:"length_m"`
	Count   int     `json:"count"`
	TotalM  float64 `json:"total_m"`
}

type BillOfMaterials struct {
	Lines          []BillOfMaterialsLine `json:"lines"`
	TotalCords     int                   `json:"total_cords"`
	TotalM         float64               `json:"total_m"`
	SameRackLinks  int                   `json:"same_rack_links"`
	CrossRackLinks int                   `json:"cross_rack_links"`
}

type BatchCalculationResponse struct {
	Results         []CalculationResponse `json:"results"`
	BillOfMaterials BillOfMaterials       `json:"bill_of_materials"`
}
