package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/medtrack/diabetes-monitor/internal/cli"
	"github.com/medtrack/diabetes-monitor/internal/config"
	"github.com/medtrack/diabetes-monitor/internal/errors"
	"github.com/medtrack/diabetes-monitor/internal/logger"
	"github.com/medtrack/diabetes-monitor/internal/repository"
	"github.com/medtrack/diabetes-monitor/internal/services"
)

func main() {
	// The .env file is optional; real environment variables win anyway.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.ParsedLevel(),
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := repository.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	gormDB := db.GetDB()
	patientRepo := repository.NewPatientRepository(gormDB)
	measurementRepo := repository.NewMeasurementRepository(gormDB)
	alertRepo := repository.NewAlertRepository(gormDB)
	insulinRepo := repository.NewInsulinRepository(gormDB)
	trackingRepo := repository.NewTrackingRepository(gormDB)

	insulinService := services.NewInsulinService(insulinRepo)
	alertService := services.NewAlertService(alertRepo)
	app := &cli.App{
		Patients:     services.NewPatientService(patientRepo),
		Measurements: services.NewMeasurementService(measurementRepo, patientRepo, insulinService, alertService),
		Insulin:      insulinService,
		Alerts:       alertService,
		Tracking:     services.NewTrackingService(trackingRepo),
	}

	ctx := context.Background()

	// Overlapping dosing rows would make recommendations depend on row
	// order, so refuse to run on bad reference data.
	if err := insulinService.ValidateRules(ctx); err != nil {
		logger.Fatalf("Invalid insulin dosing reference data: %v", err)
	}

	if err := cli.Execute(ctx, app); err != nil {
		errors.NewHandler(logger.GetLogger()).Handle(ctx, err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
