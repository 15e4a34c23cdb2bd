package model

import (
	"time"

	"github.com/kubev2v/patchcord-planner/internal/rackplan"
)

// Rack is one row of the rack lookup table.
type Rack struct {
	Code      string `gorm:"primaryKey;size:64"`
	Index     int    `gorm:"column:rack_index;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Rack) TableName() string {
	return "racks"
}

func (r Rack) ToRackInfo() rackplan.RackInfo {
	return rackplan.RackInfo{Code: r.Code, Index: r.Index}
}

type RackList []Rack

func NewRackList(racks []rackplan.RackInfo) RackList {
	out := make(RackList, 0, len(racks))
	for _, r := range racks {
		out = append(out, Rack{Code: r.Code, Index: r.Index})
	}
	return out
}

func (l RackList) ToRackInfos() []rackplan.RackInfo {
	out := make([]rackplan.RackInfo, 0, len(l))
	for _, r := range l {
		out = append(out, r.ToRackInfo())
	}
	return out
}
