package v1alpha1

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/kubev2v/patchcord-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/patchcord-planner/pkg/log"
)

// (GET /api/v1/racks)
func (h *ServiceHandler) ListRacks(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("rack_handler").
		WithContext(r.Context()).
		Operation("list_racks").
		Build()

	racks, err := h.cableSrv.ListRacks(r.Context())
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to list racks: %v", err))
		return
	}

	logger.Success().WithInt("count", len(racks)).Log()
	render.JSON(w, r, mappers.RackListToApi(racks))
}
