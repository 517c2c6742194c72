package v1alpha1

import (
	"fmt"
	"net/http"

	"github.com/chasta/skyguard/api/v1alpha1"
	"github.com/chasta/skyguard/internal/content"
	"github.com/chasta/skyguard/internal/handlers/v1alpha1/mappers"
	"github.com/chasta/skyguard/internal/util"
	"github.com/chasta/skyguard/pkg/log"
	"github.com/go-chi/render"
)

// (POST /api/v1/estimates/quote)
func (h *ServiceHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("estimation_handler").
		WithContext(r.Context()).
		Operation("create_quote").
		Build()

	var body v1alpha1.QuoteRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		logger.Error(err).Log()
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.estimationSrv.Preview(r.Context(), mappers.EstimationRequestFromApi(body))
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err, "failed to estimate")
		return
	}

	logger.Success().WithInt64("estimated_cost", result.EstimatedCost).Log()

	writeJSON(w, r, http.StatusOK, mappers.EstimateToApi(result))
}

// (POST /api/v1/calculations)
func (h *ServiceHandler) CreateCalculation(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("estimation_handler").
		WithContext(r.Context()).
		Operation("create_calculation").
		Build()

	var body v1alpha1.CalculationCreate
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		logger.Error(err).Log()
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.estimationSrv.Calculate(r.Context(), mappers.CalculationFormFromApi(body))
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err, "failed to store calculation")
		return
	}

	logger.Success().WithUUID("calculation_id", lead.Calculation.ID).Log()

	writeJSON(w, r, http.StatusCreated, mappers.CalculationResultToApi(*lead, h.followUpLink(lead.Calculation.Name, lead.Estimate.EstimatedCost, lead.Calculation.BuildingType)))
}

// followUpLink opens a WhatsApp chat prefilled with the estimate.
func (h *ServiceHandler) followUpLink(name string, cost int64, buildingType string) string {
	message := fmt.Sprintf("Halo, saya %s. Saya sudah menghitung estimasi biaya penangkal petir untuk %s: %s. Mohon info lebih lanjut.",
		name, buildingType, util.FormatIDR(cost))
	return content.WhatsAppLink(h.contact.WhatsApp, message)
}
