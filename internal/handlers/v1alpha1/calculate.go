package v1alpha1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"
	api "github.com/kubev2v/patchcord-planner/api/v1alpha1"
	"github.com/kubev2v/patchcord-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/patchcord-planner/pkg/log"
)

// (POST /api/v1/calculate)
func (h *ServiceHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("calculate_handler").
		WithContext(r.Context()).
		Operation("calculate").
		Build()

	var req api.CalculationRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.cableSrv.Calculate(r.Context(), mappers.CalculationFormApi(req))
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, statusFor(err), err.Error())
		return
	}

	logger.Success().WithFloat("recommended_m", result.Breakdown.RecommendedPatchCord).Log()
	render.JSON(w, r, mappers.CalculationToApi(*result))
}

// (POST /api/v1/calculate/batch)
func (h *ServiceHandler) CalculateBatch(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("calculate_handler").
		WithContext(r.Context()).
		Operation("calculate_batch").
		Build()

	var req api.BatchCalculationRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	logger.Step("validated").WithInt("links", len(req.Links)).Log()

	result, err := h.cableSrv.CalculateBatch(r.Context(), mappers.CalculationFormsApi(req))
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, statusFor(err), err.Error())
		return
	}

	logger.Success().WithInt("total_cords", result.BillOfMaterials.TotalCords).Log()
	render.JSON(w, r, mappers.BatchToApi(*result))
}

func decodeBody(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return fmt.Errorf("malformed body: %w", err)
	}
	return nil
}
