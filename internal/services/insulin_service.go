package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
)

// InsulinService implements the two-phase quote/confirm dosing protocol.
// Recommend and ComputeTotal are pure and repeatable; only Confirm writes.
type InsulinService struct {
	insulin domain.InsulinRepository
	now     func() time.Time
}

func NewInsulinService(insulin domain.InsulinRepository) *InsulinService {
	return &InsulinService{
		insulin: insulin,
		now:     time.Now,
	}
}

// Recommend looks up the dosing reference row covering the level and meal
// context. It returns nil without error when no row matches; the lookup
// table is re-read on every call.
func (s *InsulinService) Recommend(ctx context.Context, level float64, meal domain.MealContext) (*domain.Recommendation, error) {
	rule, err := s.insulin.FirstMatchingRule(ctx, level, meal)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, nil
	}
	return &domain.Recommendation{
		RuleID:      rule.ID,
		InsulinType: rule.InsulinType,
		BaseUnits:   rule.BaseUnits,
		UnitPerCarb: rule.UnitPerCarb,
		Notes:       rule.Notes,
		MealContext: rule.MealContext,
	}, nil
}

// ComputeTotal returns baseUnits + unitPerCarb*carbsGrams. The carbohydrate
// amount is user-entered and must be a finite non-negative number.
func (s *InsulinService) ComputeTotal(baseUnits, unitPerCarb, carbsGrams float64) (float64, error) {
	if carbsGrams < 0 || math.IsNaN(carbsGrams) || math.IsInf(carbsGrams, 0) {
		return 0, apperrors.ErrInvalidInput.WithContext("carbs_grams", carbsGrams)
	}
	return baseUnits + unitPerCarb*carbsGrams, nil
}

// Confirm persists a dose the patient actually took. A quote is never saved
// automatically; this is the only insulin operation with a side effect.
func (s *InsulinService) Confirm(ctx context.Context, patientID, measurementID uint, insulinType string, totalUnits float64, notes string) (uint, error) {
	if insulinType == "" {
		return 0, apperrors.NewValidationError("insulin type is required")
	}
	if totalUnits < 0 || math.IsNaN(totalUnits) || math.IsInf(totalUnits, 0) {
		return 0, apperrors.ErrInvalidInput.WithContext("total_units", totalUnits)
	}

	record := &domain.InsulinRecord{
		PatientID:     patientID,
		MeasurementID: measurementID,
		InsulinType:   insulinType,
		TotalUnits:    totalUnits,
		Notes:         notes,
		GivenAt:       s.now(),
	}
	if err := s.insulin.CreateRecord(ctx, record); err != nil {
		return 0, err
	}
	return record.ID, nil
}

// History returns a patient's confirmed doses since the given time.
func (s *InsulinService) History(ctx context.Context, patientID uint, since time.Time) ([]domain.InsulinRecord, error) {
	return s.insulin.ListRecords(ctx, patientID, since)
}

// ValidateRules checks the reference table for malformed or overlapping
// ranges. Overlap would make Recommend depend on incidental row order, so
// it is treated as a data error at startup rather than resolved silently.
func (s *InsulinService) ValidateRules(ctx context.Context) error {
	rules, err := s.insulin.ListRules(ctx)
	if err != nil {
		return err
	}

	byContext := make(map[domain.MealContext][]domain.InsulinRecommendationRule)
	for _, rule := range rules {
		if rule.MinLevel > rule.MaxLevel {
			return apperrors.NewValidationError(
				fmt.Sprintf("dosing rule %d has inverted range [%.0f, %.0f]", rule.ID, rule.MinLevel, rule.MaxLevel))
		}
		byContext[rule.MealContext] = append(byContext[rule.MealContext], rule)
	}

	for meal, group := range byContext {
		sort.Slice(group, func(i, j int) bool { return group[i].MinLevel < group[j].MinLevel })
		for i := 1; i < len(group); i++ {
			prev, cur := group[i-1], group[i]
			if cur.MinLevel <= prev.MaxLevel {
				return apperrors.NewValidationError(
					fmt.Sprintf("dosing rules %d and %d overlap for %s context", prev.ID, cur.ID, meal))
			}
		}
	}
	return nil
}
