package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/safespace/risk-dashboard/internal/api/request"
	"github.com/safespace/risk-dashboard/internal/api/response"
	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/chart"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/service"
)

// maxImportBytes bounds uploaded CSV datasets.
const maxImportBytes = 64 << 20

// PriceHandler handles HTTP requests for the price dataset.
// importService is nil when no SQLite price store is configured.
type PriceHandler struct {
	priceService  *service.PriceService
	importService *service.ImportService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependencies.
func NewPriceHandler(priceService *service.PriceService, importService *service.ImportService) *PriceHandler {
	return &PriceHandler{
		priceService:  priceService,
		importService: importService,
	}
}

// TickersResponse lists the tickers available for selection.
type TickersResponse struct {
	Tickers   []string         `json:"tickers"`
	StartDate time.Time        `json:"startDate"`
	EndDate   time.Time        `json:"endDate"`
	Source    model.DataSource `json:"source"`
}

// SeriesResponse holds the observations of one ticker.
type SeriesResponse struct {
	Ticker string             `json:"ticker"`
	Prices []model.PricePoint `json:"prices"`
}

// ReloadResponse describes the dataset after a reload.
type ReloadResponse struct {
	Source       model.DataSource `json:"source"`
	Observations int              `json:"observations"`
	Tickers      int              `json:"tickers"`
	Violations   int              `json:"violations"`
	LoadedAt     time.Time        `json:"loadedAt"`
}

// Tickers handles GET requests for the selectable tickers and the dataset's date bounds.
//
// Endpoint: GET /api/prices/tickers
// Response: 200 OK with TickersResponse
func (h *PriceHandler) Tickers(w http.ResponseWriter, r *http.Request) {
	snap := h.priceService.Snapshot(r.Context())
	bounds, _ := snap.Series.Bounds()

	response.RespondJSON(w, http.StatusOK, TickersResponse{
		Tickers:   snap.Series.Tickers(),
		StartDate: bounds.Start,
		EndDate:   bounds.End,
		Source:    snap.Source,
	})
}

// Series handles GET requests for the close prices of one ticker.
//
// Endpoint: GET /api/prices/{ticker}
// Query params: start_date, end_date (optional, default to the dataset bounds)
// Response: 200 OK with SeriesResponse
// Error: 400 Bad Request on an invalid date range, 404 Not Found for an unknown ticker
func (h *PriceHandler) Series(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	series, ok := h.lookup(w, r, ticker)
	if !ok {
		return
	}

	response.RespondJSON(w, http.StatusOK, SeriesResponse{Ticker: ticker, Prices: series})
}

// Chart handles GET requests for a PNG price history chart of one ticker.
//
// Endpoint: GET /api/prices/{ticker}/chart
// Query params: start_date, end_date (optional)
// Response: 200 OK with image/png
// Error: 400 Bad Request when the window holds no prices
func (h *PriceHandler) Chart(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	series, ok := h.lookup(w, r, ticker)
	if !ok {
		return
	}

	png, err := chart.PriceHistory(ticker, series)
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

// Reload handles POST requests to drop the memoized dataset and load it again.
//
// Endpoint: POST /api/prices/reload
// Response: 200 OK with ReloadResponse
func (h *PriceHandler) Reload(w http.ResponseWriter, r *http.Request) {
	snap := h.priceService.Reload(r.Context())

	response.RespondJSON(w, http.StatusOK, ReloadResponse{
		Source:       snap.Source,
		Observations: len(snap.Series),
		Tickers:      len(snap.Series.Tickers()),
		Violations:   len(snap.Violations),
		LoadedAt:     snap.LoadedAt,
	})
}

// Import handles POST requests uploading a CSV dataset into the price store.
// The body is the CSV file itself with date, ticker and close_price columns.
//
// Endpoint: POST /api/prices/import
// Response: 201 Created with model.PriceImport
// Error: 400 Bad Request on a malformed or invalid dataset,
// 503 Service Unavailable when no price store is configured
func (h *PriceHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h.importService == nil {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrFailedToImportPrices.Error(), "price store not configured")
		return
	}

	result, err := h.importService.ImportCSV(r.Context(), http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrFailedToImportPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

func (h *PriceHandler) lookup(w http.ResponseWriter, r *http.Request, ticker string) (model.PriceSeries, bool) {
	q := r.URL.Query()
	window, err := request.ParseDateRange(q.Get("start_date"), q.Get("end_date"), h.priceService.DateBounds(r.Context()))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
		return nil, false
	}

	series, err := h.priceService.Series(r.Context(), ticker, window)
	if err != nil {
		if errors.Is(err, apperrors.ErrTickerNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTickerNotFound.Error(), err.Error())
			return nil, false
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return nil, false
	}

	return series, true
}
