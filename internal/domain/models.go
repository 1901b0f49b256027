package domain

import (
	"time"

	"github.com/medtrack/diabetes-monitor/internal/errors"
)

// MealContext distinguishes fasting from post-meal measurements.
// It is derived from the time of day (11:00 cutoff), not user input.
type MealContext string

const (
	MealContextFasting  MealContext = "fasting"
	MealContextPostMeal MealContext = "post_meal"
)

// AlertKind is a closed set; values outside it are rejected at construction.
type AlertKind string

const (
	AlertKindSugarMeasurement AlertKind = "sugar_measurement"
	AlertKindDietReminder     AlertKind = "diet_reminder"
	AlertKindExerciseReminder AlertKind = "exercise_reminder"
	AlertKindHyperglycemia    AlertKind = "hyperglycemia"
	AlertKindHypoglycemia     AlertKind = "hypoglycemia"
	AlertKindTimeWarning      AlertKind = "time_warning"
	AlertKindGeneral          AlertKind = "general"
)

// Valid reports whether the kind belongs to the closed set.
func (k AlertKind) Valid() bool {
	switch k {
	case AlertKindSugarMeasurement, AlertKindDietReminder, AlertKindExerciseReminder,
		AlertKindHyperglycemia, AlertKindHypoglycemia, AlertKindTimeWarning, AlertKindGeneral:
		return true
	}
	return false
}

// AlertPriority orders alerts for display.
type AlertPriority string

const (
	PriorityNormal AlertPriority = "normal"
	PriorityHigh   AlertPriority = "high"
)

// TrackingCategory selects which daily habit an entry tracks.
type TrackingCategory string

const (
	CategoryDiet     TrackingCategory = "diet"
	CategoryExercise TrackingCategory = "exercise"
)

// Valid reports whether the category belongs to the closed set.
func (c TrackingCategory) Valid() bool {
	return c == CategoryDiet || c == CategoryExercise
}

// TrackingStatus is the state of a daily tracking entry. Entries are always
// written with their final status; "pending" exists for reminder flows only.
type TrackingStatus string

const (
	StatusPending   TrackingStatus = "pending"
	StatusCompleted TrackingStatus = "completed"
	StatusSkipped   TrackingStatus = "skipped"
)

// Patient is a registered patient, keyed by national id for login flows.
type Patient struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	NationalID string `gorm:"uniqueIndex;size:11"`
	FirstName  string
	LastName   string
	BirthDate  *time.Time
	Gender     string `gorm:"size:10"`
	Email      string
	Phone      string
}

// Measurement is a single blood sugar reading in mg/dL.
// Immutable after creation; there is no update path.
type Measurement struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	PatientID  uint `gorm:"index"`
	SugarLevel float64
	MeasuredAt time.Time `gorm:"index"`
	Notes      string    `gorm:"type:text"`
}

// Alert is a clinical warning raised for a patient. Only the read flag is
// ever mutated after creation.
type Alert struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	PatientID uint      `gorm:"index"`
	Kind      AlertKind `gorm:"size:32"`
	Message   string    `gorm:"type:text"`
	AlertTime time.Time
	Priority  AlertPriority `gorm:"size:16;default:normal"`
	IsRead    bool          `gorm:"default:false"`
}

// NewAlert builds an unread, normal-priority alert, enforcing the closed
// kind set.
func NewAlert(patientID uint, kind AlertKind, message string, at time.Time) (*Alert, error) {
	if !kind.Valid() {
		return nil, errors.ErrInvalidAlertKind.WithContext("kind", string(kind))
	}
	return &Alert{
		PatientID: patientID,
		Kind:      kind,
		Message:   message,
		AlertTime: at,
		Priority:  PriorityNormal,
		IsRead:    false,
	}, nil
}

// InsulinRecommendationRule is a read-only reference row mapping a glucose
// range and meal context to a dosing suggestion.
type InsulinRecommendationRule struct {
	ID          uint        `gorm:"primaryKey"`
	MinLevel    float64     `gorm:"index"`
	MaxLevel    float64     `gorm:"index"`
	MealContext MealContext `gorm:"size:16;index"`
	InsulinType string
	BaseUnits   float64
	UnitPerCarb float64
	Notes       string `gorm:"type:text"`
}

// Matches reports whether the rule covers the given level and context.
func (r InsulinRecommendationRule) Matches(level float64, meal MealContext) bool {
	return r.MealContext == meal && level >= r.MinLevel && level <= r.MaxLevel
}

// InsulinRecord is a confirmed dose. Created only by the confirm step of the
// quote/confirm protocol; immutable thereafter.
type InsulinRecord struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	PatientID     uint `gorm:"index"`
	MeasurementID uint `gorm:"index"`
	InsulinType   string
	TotalUnits    float64
	Notes         string `gorm:"type:text"`
	GivenAt       time.Time
}

// DietType is a reference row naming a diet plan.
type DietType struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex"`
	Description string `gorm:"type:text"`
}

// ExerciseType is a reference row naming an exercise.
type ExerciseType struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex"`
	Description string `gorm:"type:text"`
}

// DailyTrackingEntry records diet or exercise adherence for one day.
// At most one entry exists per (patient, date, category); resubmission
// overwrites the previous fields without keeping history.
type DailyTrackingEntry struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	PatientID uint             `gorm:"uniqueIndex:idx_patient_date_category"`
	Date      time.Time        `gorm:"type:date;uniqueIndex:idx_patient_date_category"`
	Category  TrackingCategory `gorm:"size:16;uniqueIndex:idx_patient_date_category"`
	TypeID    uint
	Duration  *int // minutes, exercise only
	Status    TrackingStatus `gorm:"size:16"`
	Notes     string         `gorm:"type:text"`
}

// Recommendation is a computed-but-not-persisted insulin quote.
type Recommendation struct {
	RuleID      uint
	InsulinType string
	BaseUnits   float64
	UnitPerCarb float64
	Notes       string
	MealContext MealContext
}

// MeasurementResult is the composite outcome of recording one measurement.
type MeasurementResult struct {
	MeasurementID  uint
	Period         string
	IsValid        bool
	MealContext    MealContext
	AlertsRaised   []Alert
	Recommendation *Recommendation
}

// MeasurementStatistics aggregates readings over a date range.
type MeasurementStatistics struct {
	Total     int64
	Average   float64
	MinLevel  float64
	MaxLevel  float64
	LowCount  int64
	HighCount int64
}
