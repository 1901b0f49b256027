package services

import (
	"context"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
)

// Exercise sessions longer than this are treated as input mistakes.
const maxExerciseMinutes = 240

// TrackingService enforces the one-entry-per-patient-per-day-per-category
// invariant for diet and exercise tracking.
type TrackingService struct {
	tracking domain.TrackingRepository
	now      func() time.Time
}

func NewTrackingService(tracking domain.TrackingRepository) *TrackingService {
	return &TrackingService{
		tracking: tracking,
		now:      time.Now,
	}
}

// UpsertDailyTracking inserts the entry for (patient, date, category) or
// overwrites the existing one's fields in place; the entry identity is
// stable across resubmissions and no prior-value history is kept. A nil
// date defaults to the current local date. The supplied status is written
// directly; entries never pass through an intermediate pending state.
func (s *TrackingService) UpsertDailyTracking(ctx context.Context, patientID uint, category domain.TrackingCategory, typeID uint, date *time.Time, duration *int, status domain.TrackingStatus, notes string) (uint, error) {
	if !category.Valid() {
		return 0, apperrors.ErrInvalidCategory.WithContext("category", string(category))
	}
	if category == domain.CategoryExercise {
		if duration == nil {
			return 0, apperrors.NewValidationError("exercise entries require a duration")
		}
		if *duration <= 0 || *duration > maxExerciseMinutes {
			return 0, apperrors.ErrInvalidInput.WithContext("duration_minutes", *duration)
		}
	}

	day := s.now()
	if date != nil {
		day = *date
	}

	entry := &domain.DailyTrackingEntry{
		PatientID: patientID,
		Date:      time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		Category:  category,
		TypeID:    typeID,
		Duration:  duration,
		Status:    status,
		Notes:     notes,
	}
	if err := s.tracking.Upsert(ctx, entry); err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// LogDiet resolves the diet type by name and upserts today's diet entry as
// completed.
func (s *TrackingService) LogDiet(ctx context.Context, patientID uint, dietTypeName, notes string) (uint, error) {
	dietType, err := s.tracking.GetDietTypeByName(ctx, dietTypeName)
	if err != nil {
		return 0, err
	}
	return s.UpsertDailyTracking(ctx, patientID, domain.CategoryDiet, dietType.ID, nil, nil, domain.StatusCompleted, notes)
}

// LogExercise resolves the exercise type by name and upserts today's
// exercise entry as completed.
func (s *TrackingService) LogExercise(ctx context.Context, patientID uint, exerciseTypeName string, durationMinutes int, notes string) (uint, error) {
	exerciseType, err := s.tracking.GetExerciseTypeByName(ctx, exerciseTypeName)
	if err != nil {
		return 0, err
	}
	return s.UpsertDailyTracking(ctx, patientID, domain.CategoryExercise, exerciseType.ID, nil, &durationMinutes, domain.StatusCompleted, notes)
}

// DailyEntries returns the tracking entries for one calendar day.
func (s *TrackingService) DailyEntries(ctx context.Context, patientID uint, category domain.TrackingCategory, day time.Time) ([]domain.DailyTrackingEntry, error) {
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory.WithContext("category", string(category))
	}
	return s.tracking.ListForDay(ctx, patientID, category, day)
}

// DietTypes lists the diet type reference rows.
func (s *TrackingService) DietTypes(ctx context.Context) ([]domain.DietType, error) {
	return s.tracking.ListDietTypes(ctx)
}

// ExerciseTypes lists the exercise type reference rows.
func (s *TrackingService) ExerciseTypes(ctx context.Context) ([]domain.ExerciseType, error) {
	return s.tracking.ListExerciseTypes(ctx)
}
