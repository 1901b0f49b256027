package repository

import (
	"context"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
	"gorm.io/gorm"
)

// MeasurementRepository handles blood sugar measurement persistence
type MeasurementRepository struct {
	db *gorm.DB
}

// NewMeasurementRepository creates a new measurement repository
func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// Create persists a new measurement and fills in its id
func (r *MeasurementRepository) Create(ctx context.Context, m *domain.Measurement) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// ListForDay returns the measurements taken on the given calendar day,
// newest first
func (r *MeasurementRepository) ListForDay(ctx context.Context, patientID uint, day time.Time) ([]domain.Measurement, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return r.ListRange(ctx, patientID, start, start.AddDate(0, 0, 1))
}

// ListRange returns the measurements in [start, end), newest first
func (r *MeasurementRepository) ListRange(ctx context.Context, patientID uint, start, end time.Time) ([]domain.Measurement, error) {
	var measurements []domain.Measurement
	if err := r.db.WithContext(ctx).
		Where("patient_id = ? AND measured_at >= ? AND measured_at < ?", patientID, start, end).
		Order("measured_at DESC").
		Find(&measurements).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return measurements, nil
}

// Statistics aggregates readings in [start, end) with the clinical 70/200
// thresholds for the low/high counters
func (r *MeasurementRepository) Statistics(ctx context.Context, patientID uint, start, end time.Time) (*domain.MeasurementStatistics, error) {
	var stats domain.MeasurementStatistics
	err := r.db.WithContext(ctx).
		Model(&domain.Measurement{}).
		Select(`COUNT(*) AS total,
			COALESCE(ROUND(AVG(sugar_level)::numeric, 2), 0) AS average,
			COALESCE(MIN(sugar_level), 0) AS min_level,
			COALESCE(MAX(sugar_level), 0) AS max_level,
			COUNT(CASE WHEN sugar_level < 70 THEN 1 END) AS low_count,
			COUNT(CASE WHEN sugar_level > 200 THEN 1 END) AS high_count`).
		Where("patient_id = ? AND measured_at >= ? AND measured_at < ?", patientID, start, end).
		Scan(&stats).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &stats, nil
}
