package v1alpha1

import (
	"github.com/go-chi/chi/v5"
	"github.com/kubev2v/patchcord-planner/internal/handlers/validator"
	"github.com/kubev2v/patchcord-planner/internal/service"
)

type ServiceHandler struct {
	cableSrv  *service.CableService
	validator *validator.Validator
}

func NewServiceHandler(cableSrv *service.CableService) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewCalculationValidationRules()...)

	return &ServiceHandler{
		cableSrv:  cableSrv,
		validator: v,
	}
}

// Routes mounts every endpoint of the API on r.
func (h *ServiceHandler) Routes(r chi.Router) {
	r.Get("/", h.GetIndex)
	r.Get("/health", h.Health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/info", h.GetInfo)
		r.Get("/racks", h.ListRacks)
		r.Post("/calculate", h.Calculate)
		r.Post("/calculate/batch", h.CalculateBatch)
	})
}
