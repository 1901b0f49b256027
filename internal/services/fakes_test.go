package services

import (
	"context"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
)

// In-memory repository fakes. They satisfy the domain repository
// interfaces so the services can be exercised without a database.

type fakePatientRepo struct {
	patients map[uint]domain.Patient
}

func newFakePatientRepo(patients ...domain.Patient) *fakePatientRepo {
	repo := &fakePatientRepo{patients: make(map[uint]domain.Patient)}
	for _, p := range patients {
		repo.patients[p.ID] = p
	}
	return repo
}

func (f *fakePatientRepo) GetByID(_ context.Context, id uint) (*domain.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperrors.ErrPatientNotFound.WithContext("patient_id", id)
	}
	return &p, nil
}

func (f *fakePatientRepo) GetByNationalID(_ context.Context, nationalID string) (*domain.Patient, error) {
	for _, p := range f.patients {
		if p.NationalID == nationalID {
			return &p, nil
		}
	}
	return nil, apperrors.ErrPatientNotFound.WithContext("national_id", nationalID)
}

type fakeMeasurementRepo struct {
	measurements []domain.Measurement
	nextID       uint
	failCreate   error
}

func (f *fakeMeasurementRepo) Create(_ context.Context, m *domain.Measurement) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.nextID++
	m.ID = f.nextID
	f.measurements = append(f.measurements, *m)
	return nil
}

func (f *fakeMeasurementRepo) ListForDay(ctx context.Context, patientID uint, day time.Time) ([]domain.Measurement, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return f.ListRange(ctx, patientID, start, start.AddDate(0, 0, 1))
}

func (f *fakeMeasurementRepo) ListRange(_ context.Context, patientID uint, start, end time.Time) ([]domain.Measurement, error) {
	var out []domain.Measurement
	for _, m := range f.measurements {
		if m.PatientID == patientID && !m.MeasuredAt.Before(start) && m.MeasuredAt.Before(end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeasurementRepo) Statistics(ctx context.Context, patientID uint, start, end time.Time) (*domain.MeasurementStatistics, error) {
	measurements, _ := f.ListRange(ctx, patientID, start, end)
	stats := &domain.MeasurementStatistics{}
	var sum float64
	for _, m := range measurements {
		if stats.Total == 0 || m.SugarLevel < stats.MinLevel {
			stats.MinLevel = m.SugarLevel
		}
		if m.SugarLevel > stats.MaxLevel {
			stats.MaxLevel = m.SugarLevel
		}
		if m.SugarLevel < 70 {
			stats.LowCount++
		}
		if m.SugarLevel > 200 {
			stats.HighCount++
		}
		sum += m.SugarLevel
		stats.Total++
	}
	if stats.Total > 0 {
		stats.Average = sum / float64(stats.Total)
	}
	return stats, nil
}

type fakeAlertRepo struct {
	alerts     []domain.Alert
	nextID     uint
	failCreate error
}

func (f *fakeAlertRepo) Create(_ context.Context, a *domain.Alert) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.nextID++
	a.ID = f.nextID
	f.alerts = append(f.alerts, *a)
	return nil
}

func (f *fakeAlertRepo) List(_ context.Context, patientID uint, unreadOnly bool) ([]domain.Alert, error) {
	var out []domain.Alert
	for _, a := range f.alerts {
		if a.PatientID != patientID {
			continue
		}
		if unreadOnly && a.IsRead {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAlertRepo) MarkRead(_ context.Context, alertID uint) error {
	for i := range f.alerts {
		if f.alerts[i].ID == alertID {
			f.alerts[i].IsRead = true
			return nil
		}
	}
	return apperrors.ErrAlertNotFound.WithContext("alert_id", alertID)
}

type fakeInsulinRepo struct {
	rules    []domain.InsulinRecommendationRule
	records  []domain.InsulinRecord
	nextID   uint
	failRule error
}

func (f *fakeInsulinRepo) FirstMatchingRule(_ context.Context, level float64, meal domain.MealContext) (*domain.InsulinRecommendationRule, error) {
	if f.failRule != nil {
		return nil, f.failRule
	}
	for _, rule := range f.rules {
		if rule.Matches(level, meal) {
			r := rule
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeInsulinRepo) ListRules(_ context.Context) ([]domain.InsulinRecommendationRule, error) {
	return f.rules, nil
}

func (f *fakeInsulinRepo) CreateRecord(_ context.Context, r *domain.InsulinRecord) error {
	f.nextID++
	r.ID = f.nextID
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeInsulinRepo) ListRecords(_ context.Context, patientID uint, since time.Time) ([]domain.InsulinRecord, error) {
	var out []domain.InsulinRecord
	for _, r := range f.records {
		if r.PatientID == patientID && !r.GivenAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

type trackingKey struct {
	patientID uint
	date      string
	category  domain.TrackingCategory
}

type fakeTrackingRepo struct {
	entries       map[trackingKey]*domain.DailyTrackingEntry
	nextID        uint
	dietTypes     []domain.DietType
	exerciseTypes []domain.ExerciseType
}

func newFakeTrackingRepo() *fakeTrackingRepo {
	return &fakeTrackingRepo{entries: make(map[trackingKey]*domain.DailyTrackingEntry)}
}

func (f *fakeTrackingRepo) Upsert(_ context.Context, e *domain.DailyTrackingEntry) error {
	key := trackingKey{e.PatientID, e.Date.Format("2006-01-02"), e.Category}
	if existing, ok := f.entries[key]; ok {
		e.ID = existing.ID
	} else {
		f.nextID++
		e.ID = f.nextID
	}
	stored := *e
	f.entries[key] = &stored
	return nil
}

func (f *fakeTrackingRepo) ListForDay(_ context.Context, patientID uint, category domain.TrackingCategory, day time.Time) ([]domain.DailyTrackingEntry, error) {
	key := trackingKey{patientID, day.Format("2006-01-02"), category}
	if e, ok := f.entries[key]; ok {
		return []domain.DailyTrackingEntry{*e}, nil
	}
	return nil, nil
}

func (f *fakeTrackingRepo) GetDietTypeByName(_ context.Context, name string) (*domain.DietType, error) {
	for _, dt := range f.dietTypes {
		if dt.Name == name {
			d := dt
			return &d, nil
		}
	}
	return nil, apperrors.ErrTypeRefNotFound.WithContext("diet_type", name)
}

func (f *fakeTrackingRepo) GetExerciseTypeByName(_ context.Context, name string) (*domain.ExerciseType, error) {
	for _, et := range f.exerciseTypes {
		if et.Name == name {
			e := et
			return &e, nil
		}
	}
	return nil, apperrors.ErrTypeRefNotFound.WithContext("exercise_type", name)
}

func (f *fakeTrackingRepo) ListDietTypes(_ context.Context) ([]domain.DietType, error) {
	return f.dietTypes, nil
}

func (f *fakeTrackingRepo) ListExerciseTypes(_ context.Context) ([]domain.ExerciseType, error) {
	return f.exerciseTypes, nil
}
