package mappers

import (
	api "github.com/kubev2v/patchcord-planner/api/v1alpha1"
	"github.com/kubev2v/patchcord-planner/internal/bom"
	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/kubev2v/patchcord-planner/internal/service"
)

func CalculationToApi(r service.CalculationResult) api.CalculationResponse {
	return api.CalculationResponse{
		LengthM:               r.Breakdown.RawTotal,
		RecommendedPatchCordM: r.Breakdown.RecommendedPatchCord,
		SameRack:              r.Breakdown.SameRack,
		VerticalAM:            r.Breakdown.VerticalA,
		VerticalBM:            r.Breakdown.VerticalB,
		HorizontalM:           r.Breakdown.Horizontal,
		RawTotalM:             r.Breakdown.RawTotal,
		SlackAddedM:           r.Breakdown.SlackAdded,
		ServerA:               serverToApi(r.ServerA),
		ServerB:               serverToApi(r.ServerB),
	}
}

func BatchToApi(r service.BatchResult) api.BatchCalculationResponse {
	results := make([]api.CalculationResponse, 0, len(r.Results))
	for _, res := range r.Results {
		results = append(results, CalculationToApi(res))
	}
	return api.BatchCalculationResponse{
		Results:         results,
		BillOfMaterials: BillOfMaterialsToApi(r.BillOfMaterials),
	}
}

func BillOfMaterialsToApi(b bom.BillOfMaterials) api.BillOfMaterials {
	lines := make([]api.BillOfMaterialsLine, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, api.BillOfMaterialsLine{LengthM: l.LengthMeters, Count: l.Count, TotalM: l.TotalMeters})
	}
	return api.BillOfMaterials{
		Lines:          lines,
		TotalCords:     b.TotalCords,
		TotalM:         b.TotalMeters,
		SameRackLinks:  b.SameRackLinks,
		CrossRackLinks: b.CrossRackLinks,
	}
}

func RackListToApi(racks []rackplan.RackInfo) api.RackList {
	out := api.RackList{Racks: make([]api.Rack, 0, len(racks))}
	for _, r := range racks {
		out.Racks = append(out.Racks, api.Rack{Code: r.Code, Index: r.Index})
	}
	return out
}

func serverToApi(e service.ResolvedEndpoint) api.ResolvedServer {
	out := api.ResolvedServer{
		RackCode:  e.RackCode,
		RackIndex: e.RackIndex,
		Unit:      e.Unit,
	}
	if e.Hostname != "" {
		hostname := e.Hostname
		out.Hostname = &hostname
	}
	return out
}
