package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/safespace/risk-dashboard/internal/api"
	"github.com/safespace/risk-dashboard/internal/config"
	"github.com/safespace/risk-dashboard/internal/database"
	"github.com/safespace/risk-dashboard/internal/logger"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/repository"
	"github.com/safespace/risk-dashboard/internal/scheduler"
	"github.com/safespace/risk-dashboard/internal/service"
	"github.com/safespace/risk-dashboard/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logg := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(logg)

	// The SQLite price store is optional; without it prices come from the CSV file.
	var db *sql.DB
	var priceRepo *repository.PriceRepository
	if cfg.Prices.DBPath != "" {
		db, err = database.Open(cfg.Prices.DBPath)
		if err != nil {
			logg.Fatal().Err(err).Str("path", cfg.Prices.DBPath).Msg("Failed to open database")
		}
		defer db.Close()

		priceRepo = repository.NewPriceRepository(db)
		logg.Info().Str("path", cfg.Prices.DBPath).Msg("Connected to price store")
	}

	// Create services
	priceService := service.NewPriceService(
		service.NewSource(cfg.Prices.DataPath, priceRepo),
		service.SyntheticGenerator(cfg.Prices.Seed()),
		logg,
	)
	services := api.Services{
		System:     service.NewSystemService(db, priceService),
		Prices:     priceService,
		Simulation: service.NewSimulationService(priceService, model.Alignment(cfg.Engine.Alignment), logg),
		Loan:       service.NewLoanService(logg),
	}
	if priceRepo != nil {
		services.Import = service.NewImportService(priceRepo, priceService, logg)
	}

	// Warm the cache so the first request does not pay for the load.
	priceService.Snapshot(context.Background())

	var sched *scheduler.Scheduler
	if cfg.Prices.ReloadSchedule != "" {
		sched = scheduler.New(logg)
		if err := sched.AddJob(cfg.Prices.ReloadSchedule, scheduler.NewPriceReloadJob(priceService, logg)); err != nil {
			logg.Fatal().Err(err).Str("schedule", cfg.Prices.ReloadSchedule).Msg("Invalid reload schedule")
		}
		sched.Start()
	}

	// Create router
	router := api.NewRouter(services, cfg, logg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logg.Info().
			Str("addr", cfg.Server.Addr).
			Str("version", version.Version).
			Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info().Msg("Shutting down server...")

	if sched != nil {
		sched.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	logg.Info().Msg("Server exited")
}
