package handlers

import (
	"errors"
	"net/http"

	"github.com/safespace/risk-dashboard/internal/api/request"
	"github.com/safespace/risk-dashboard/internal/api/response"
	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/chart"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/report"
	"github.com/safespace/risk-dashboard/internal/service"
	"github.com/safespace/risk-dashboard/internal/validation"
)

// SimulationHandler handles HTTP requests for portfolio simulations.
type SimulationHandler struct {
	simulationService *service.SimulationService
	formatter         *report.Formatter
}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler(simulationService *service.SimulationService, formatter *report.Formatter) *SimulationHandler {
	return &SimulationHandler{
		simulationService: simulationService,
		formatter:         formatter,
	}
}

// SimulationResponse pairs the raw run with its display values.
type SimulationResponse struct {
	Run     model.SimulationRun      `json:"run"`
	Display report.SimulationDisplay `json:"display"`
}

// Simulate handles POST requests to run a portfolio simulation.
//
// Endpoint: POST /api/simulation
// Request body: request.SimulationRequest
// Response: 200 OK with SimulationResponse
// Error: 400 Bad Request on an invalid request, 500 Internal Server Error otherwise
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}

	response.RespondJSON(w, http.StatusOK, SimulationResponse{
		Run:     run,
		Display: h.formatter.Simulation(run),
	})
}

// Chart handles POST requests to run a simulation and plot its cumulative returns.
//
// Endpoint: POST /api/simulation/chart
// Request body: request.SimulationRequest
// Response: 200 OK with image/png
// Error: 400 Bad Request when no ticker had enough data to plot
func (h *SimulationHandler) Chart(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}

	png, err := chart.CumulativeReturns(run)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientData) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientData.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRenderChart.Error(), err.Error())
		return
	}

	respondPNG(w, png)
}

func (h *SimulationHandler) run(w http.ResponseWriter, r *http.Request) (model.SimulationRun, bool) {
	req, err := parseJSON[request.SimulationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return model.SimulationRun{}, false
	}

	if err := validation.ValidateSimulationRequest(req); err != nil {
		response.RespondValidationError(w, err)
		return model.SimulationRun{}, false
	}

	simReq, err := req.ToModel()
	if err != nil {
		response.RespondValidationError(w, err)
		return model.SimulationRun{}, false
	}

	run, err := h.simulationService.Run(r.Context(), simReq)
	if err != nil {
		if isRequestError(err) {
			response.RespondValidationError(w, err)
			return model.SimulationRun{}, false
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRunSimulation.Error(), err.Error())
		return model.SimulationRun{}, false
	}

	return run, true
}

func isRequestError(err error) bool {
	for _, target := range []error{
		apperrors.ErrNoTickers,
		apperrors.ErrMissingAllocation,
		apperrors.ErrInvalidAllocation,
		apperrors.ErrAllocationTotal,
		apperrors.ErrNegativeAmount,
		apperrors.ErrInvalidDateRange,
		apperrors.ErrInvalidAlignment,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
