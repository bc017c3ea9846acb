package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"oiltrack-service/internal/auth"
	"oiltrack-service/internal/config"
	"oiltrack-service/internal/db"
	httphandler "oiltrack-service/internal/http"
	"oiltrack-service/internal/http/middleware"
	"oiltrack-service/internal/logger"
	"oiltrack-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create data dir: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment, cfg.LogPath())

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to open database")
	}

	ledgerService := service.NewLedgerService(database, cfg.Ledger.HistoryLimit, appLogger)
	exportService := service.NewExportService(database, cfg.Store.DataDir, cfg.Store.DBFile, appLogger)
	vehicleService := service.NewVehicleService(database, appLogger)

	var authMiddleware gin.HandlerFunc
	if cfg.Auth.APITokenSecret != "" {
		authMiddleware = middleware.Auth(auth.NewParser(cfg.Auth.APITokenSecret))
	} else {
		appLogger.Warn().Msg("API_TOKEN_SECRET not set, API is unauthenticated")
	}

	handler := httphandler.NewHandler(ledgerService, exportService, vehicleService, appLogger)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, appLogger)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting oiltrack service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
