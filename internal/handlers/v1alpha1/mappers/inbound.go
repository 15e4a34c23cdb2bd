package mappers

import (
	"strings"

	api "github.com/kubev2v/patchcord-planner/api/v1alpha1"
	"github.com/kubev2v/patchcord-planner/internal/service"
)

func CalculationFormApi(req api.CalculationRequest) service.CalculationForm {
	form := service.CalculationForm{
		ServerA: endpointApi(req.ServerA),
		ServerB: endpointApi(req.ServerB),
	}
	if req.Config != nil {
		form.SafetySlackCm = req.Config.SafetySlackCm
		form.CrossRackSlackM = req.Config.CrossRackSlackM
	}
	return form
}

func CalculationFormsApi(req api.BatchCalculationRequest) []service.CalculationForm {
	forms := make([]service.CalculationForm, 0, len(req.Links))
	for _, l := range req.Links {
		forms = append(forms, CalculationFormApi(l))
	}
	return forms
}

func endpointApi(e api.ServerEndpoint) service.Endpoint {
	out := service.Endpoint{
		RackCode: strings.TrimSpace(e.RackCode),
		Unit:     e.Unit,
	}
	if e.Hostname != nil {
		out.Hostname = strings.TrimSpace(*e.Hostname)
	}
	return out
}
