package v1alpha1

type Rack struct {
	Code  string `json:"code"`
	Index int    `json:"index"`
}

type RackList struct {
	Racks []Rack `json:"racks"`
}
