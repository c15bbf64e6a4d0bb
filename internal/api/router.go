// Package api wires the HTTP handlers into a chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/safespace/risk-dashboard/internal/api/handlers"
	custommiddleware "github.com/safespace/risk-dashboard/internal/api/middleware"
	"github.com/safespace/risk-dashboard/internal/config"
	"github.com/safespace/risk-dashboard/internal/report"
	"github.com/safespace/risk-dashboard/internal/service"
)

// Services groups the services exposed over HTTP.
// Import is nil when no SQLite price store is configured.
type Services struct {
	System     *service.SystemService
	Prices     *service.PriceService
	Simulation *service.SimulationService
	Loan       *service.LoanService
	Import     *service.ImportService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	formatter := report.NewFormatter(cfg.Engine.Currency)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(services.Prices, services.Import)
			r.Get("/tickers", priceHandler.Tickers)
			r.Post("/reload", priceHandler.Reload)
			r.Post("/import", priceHandler.Import)

			r.Route("/{ticker}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateTickerMiddleware)
				r.Get("/", priceHandler.Series)
				r.Get("/chart", priceHandler.Chart)
			})
		})

		r.Route("/simulation", func(r chi.Router) {
			simulationHandler := handlers.NewSimulationHandler(services.Simulation, formatter)
			r.Post("/", simulationHandler.Simulate)
			r.Post("/chart", simulationHandler.Chart)
		})

		r.Route("/loan", func(r chi.Router) {
			loanHandler := handlers.NewLoanHandler(services.Loan, formatter)
			r.Post("/assessment", loanHandler.Assess)
		})
	})

	return r
}
