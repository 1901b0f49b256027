package services

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
	"github.com/medtrack/diabetes-monitor/internal/logger"
	"github.com/medtrack/diabetes-monitor/internal/schedule"
)

// Readings above this are implausible for a fingerstick meter.
const maxSugarLevel = 600

// MeasurementService orchestrates a single measurement submission: parse,
// validate, classify, persist, quote insulin and raise alerts.
type MeasurementService struct {
	measurements domain.MeasurementRepository
	patients     domain.PatientRepository
	insulin      *InsulinService
	alerts       *AlertService
	now          func() time.Time
}

func NewMeasurementService(
	measurements domain.MeasurementRepository,
	patients domain.PatientRepository,
	insulin *InsulinService,
	alerts *AlertService,
) *MeasurementService {
	return &MeasurementService{
		measurements: measurements,
		patients:     patients,
		insulin:      insulin,
		alerts:       alerts,
		now:          time.Now,
	}
}

// RecordMeasurement validates and persists a raw glucose reading and
// returns the composite result. Validation failures short-circuit before
// anything is written. Once the measurement is committed it stands: the
// insulin quote and the alert writes are auxiliary, their failures are
// logged and never undo the measurement.
func (s *MeasurementService) RecordMeasurement(ctx context.Context, patientID uint, rawValue, notes string) (*domain.MeasurementResult, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, apperrors.ErrInvalidInput.WithContext("raw_value", rawValue)
	}
	if value < 0 || value > maxSugarLevel {
		return nil, apperrors.ErrInvalidRange.WithContext("value", value)
	}

	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	measuredAt := s.now()
	period, isValid := schedule.Classify(measuredAt)
	meal := schedule.MealContextAt(measuredAt)

	measurement := &domain.Measurement{
		PatientID:  patientID,
		SugarLevel: value,
		MeasuredAt: measuredAt,
		Notes:      notes,
	}
	if err := s.measurements.Create(ctx, measurement); err != nil {
		return nil, err
	}

	recommendation, err := s.insulin.Recommend(ctx, value, meal)
	if err != nil {
		// The quote is advisory; its absence never blocks the save.
		logger.Warn("Insulin recommendation lookup failed",
			"patient_id", patientID, "error", err)
		recommendation = nil
	}

	raised := s.alerts.RaiseGlucoseAlerts(ctx, patientID, value, isValid, measuredAt)

	logger.Info("Measurement recorded",
		"patient_id", patientID,
		"measurement_id", measurement.ID,
		"value", value,
		"period", string(period),
		"valid_time", isValid,
		"alerts", len(raised))

	return &domain.MeasurementResult{
		MeasurementID:  measurement.ID,
		Period:         string(period),
		IsValid:        isValid,
		MealContext:    meal,
		AlertsRaised:   raised,
		Recommendation: recommendation,
	}, nil
}

// MeasurementsForDay returns a patient's readings for one calendar day,
// newest first.
func (s *MeasurementService) MeasurementsForDay(ctx context.Context, patientID uint, day time.Time) ([]domain.Measurement, error) {
	return s.measurements.ListForDay(ctx, patientID, day)
}

// MeasurementsRange returns a patient's readings in [start, end).
func (s *MeasurementService) MeasurementsRange(ctx context.Context, patientID uint, start, end time.Time) ([]domain.Measurement, error) {
	return s.measurements.ListRange(ctx, patientID, start, end)
}

// Statistics aggregates a patient's readings over [start, end).
func (s *MeasurementService) Statistics(ctx context.Context, patientID uint, start, end time.Time) (*domain.MeasurementStatistics, error) {
	return s.measurements.Statistics(ctx, patientID, start, end)
}
