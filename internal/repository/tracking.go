package repository

import (
	"context"
	"errors"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrackingRepository handles daily diet/exercise tracking persistence and
// type reference lookups
type TrackingRepository struct {
	db *gorm.DB
}

// NewTrackingRepository creates a new tracking repository
func NewTrackingRepository(db *gorm.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

// Upsert atomically inserts the entry or overwrites the existing one for
// the same (patient, date, category) tuple. The surviving row's id is
// written back into e.
func (r *TrackingRepository) Upsert(ctx context.Context, e *domain.DailyTrackingEntry) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "patient_id"}, {Name: "date"}, {Name: "category"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"type_id", "duration", "status", "notes", "updated_at",
			}),
		}).
		Create(e).Error
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// ListForDay returns the tracking entries for one calendar day
func (r *TrackingRepository) ListForDay(ctx context.Context, patientID uint, category domain.TrackingCategory, day time.Time) ([]domain.DailyTrackingEntry, error) {
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var entries []domain.DailyTrackingEntry
	if err := r.db.WithContext(ctx).
		Where("patient_id = ? AND category = ? AND date = ?", patientID, category, date).
		Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entries, nil
}

// GetDietTypeByName resolves a diet type reference by its display name
func (r *TrackingRepository) GetDietTypeByName(ctx context.Context, name string) (*domain.DietType, error) {
	var dt domain.DietType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&dt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTypeRefNotFound.WithContext("diet_type", name)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &dt, nil
}

// GetExerciseTypeByName resolves an exercise type reference by its display name
func (r *TrackingRepository) GetExerciseTypeByName(ctx context.Context, name string) (*domain.ExerciseType, error) {
	var et domain.ExerciseType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&et).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTypeRefNotFound.WithContext("exercise_type", name)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &et, nil
}

// ListDietTypes returns all diet type references ordered by name
func (r *TrackingRepository) ListDietTypes(ctx context.Context) ([]domain.DietType, error) {
	var types []domain.DietType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return types, nil
}

// ListExerciseTypes returns all exercise type references ordered by name
func (r *TrackingRepository) ListExerciseTypes(ctx context.Context) ([]domain.ExerciseType, error) {
	var types []domain.ExerciseType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return types, nil
}
