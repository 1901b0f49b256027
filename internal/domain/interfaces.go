package domain

import (
	"context"
	"time"
)

// PatientRepository handles patient lookups
type PatientRepository interface {
	GetByID(ctx context.Context, id uint) (*Patient, error)
	GetByNationalID(ctx context.Context, nationalID string) (*Patient, error)
}

// MeasurementRepository persists and queries blood sugar measurements
type MeasurementRepository interface {
	Create(ctx context.Context, m *Measurement) error
	ListForDay(ctx context.Context, patientID uint, day time.Time) ([]Measurement, error)
	ListRange(ctx context.Context, patientID uint, start, end time.Time) ([]Measurement, error)
	Statistics(ctx context.Context, patientID uint, start, end time.Time) (*MeasurementStatistics, error)
}

// AlertRepository persists and queries clinical alerts
type AlertRepository interface {
	Create(ctx context.Context, a *Alert) error
	List(ctx context.Context, patientID uint, unreadOnly bool) ([]Alert, error)
	MarkRead(ctx context.Context, alertID uint) error
}

// InsulinRepository reads the dosing reference table and persists
// confirmed doses
type InsulinRepository interface {
	FirstMatchingRule(ctx context.Context, level float64, meal MealContext) (*InsulinRecommendationRule, error)
	ListRules(ctx context.Context) ([]InsulinRecommendationRule, error)
	CreateRecord(ctx context.Context, r *InsulinRecord) error
	ListRecords(ctx context.Context, patientID uint, since time.Time) ([]InsulinRecord, error)
}

// TrackingRepository persists daily diet/exercise entries and resolves
// type references
type TrackingRepository interface {
	Upsert(ctx context.Context, e *DailyTrackingEntry) error
	ListForDay(ctx context.Context, patientID uint, category TrackingCategory, day time.Time) ([]DailyTrackingEntry, error)
	GetDietTypeByName(ctx context.Context, name string) (*DietType, error)
	GetExerciseTypeByName(ctx context.Context, name string) (*ExerciseType, error)
	ListDietTypes(ctx context.Context) ([]DietType, error)
	ListExerciseTypes(ctx context.Context) ([]ExerciseType, error)
}
