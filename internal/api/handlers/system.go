package handlers

import (
	"net/http"

	"github.com/safespace/risk-dashboard/internal/api/response"
	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/service"
)

// Database states reported by the health endpoint.
const (
	dbNotConfigured = "not configured"
	dbConnected     = "connected"
	dbDisconnected  = "disconnected"
)

// SystemHandler serves health and version information.
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// HealthResponse is the body of GET /api/system/health.
type HealthResponse struct {
	Status   string                 `json:"status"`
	Database string                 `json:"database"`
	Prices   model.PriceCacheStatus `json:"prices"`
	Error    string                 `json:"error,omitempty"`
}

// Health reports the price cache state and, when a price store is configured,
// database connectivity. A synthetic cache is still healthy. An unreachable
// store answers 503.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:   "healthy",
		Database: dbNotConfigured,
	}

	if h.systemService.DatabaseConfigured() {
		health.Database = dbConnected
		if err := h.systemService.CheckHealth(); err != nil {
			health.Status = "unhealthy"
			health.Database = dbDisconnected
			health.Error = err.Error()
		}
	}

	health.Prices = h.systemService.PriceCache(r.Context())

	status := http.StatusOK
	if health.Database == dbDisconnected {
		status = http.StatusServiceUnavailable
	}
	response.RespondJSON(w, status, health)
}

// Version handles GET /api/system/version.
// Returns the application version, schema version, active price source and enabled features,
// or 500 when the schema version cannot be read.
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	info, err := h.systemService.CheckVersion(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetVersionInfo.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, info)
}
