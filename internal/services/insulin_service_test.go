package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postMealRules() []domain.InsulinRecommendationRule {
	return []domain.InsulinRecommendationRule{
		{ID: 1, MinLevel: 141, MaxLevel: 199, MealContext: domain.MealContextPostMeal, InsulinType: "Rapid-acting", BaseUnits: 2, UnitPerCarb: 0.1},
		{ID: 2, MinLevel: 200, MaxLevel: 250, MealContext: domain.MealContextPostMeal, InsulinType: "Rapid-acting", BaseUnits: 4, UnitPerCarb: 0.1},
		{ID: 3, MinLevel: 181, MaxLevel: 250, MealContext: domain.MealContextFasting, InsulinType: "Rapid-acting", BaseUnits: 4, UnitPerCarb: 0.1},
	}
}

func TestRecommendMatchesLevelAndContext(t *testing.T) {
	svc := NewInsulinService(&fakeInsulinRepo{rules: postMealRules()})

	rec, err := svc.Recommend(context.Background(), 205, domain.MealContextPostMeal)

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, uint(2), rec.RuleID)
	assert.Equal(t, 4.0, rec.BaseUnits)
	assert.Equal(t, domain.MealContextPostMeal, rec.MealContext)
}

func TestRecommendNoMatchReturnsNil(t *testing.T) {
	svc := NewInsulinService(&fakeInsulinRepo{rules: postMealRules()})

	rec, err := svc.Recommend(context.Background(), 100, domain.MealContextPostMeal)

	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecommendFirstRuleWinsOnOverlap(t *testing.T) {
	// Overlapping rows are a data error caught by ValidateRules, but the
	// lookup itself stays deterministic: first row in store order.
	rules := []domain.InsulinRecommendationRule{
		{ID: 1, MinLevel: 100, MaxLevel: 200, MealContext: domain.MealContextFasting, BaseUnits: 1},
		{ID: 2, MinLevel: 150, MaxLevel: 250, MealContext: domain.MealContextFasting, BaseUnits: 9},
	}
	svc := NewInsulinService(&fakeInsulinRepo{rules: rules})

	rec, err := svc.Recommend(context.Background(), 180, domain.MealContextFasting)

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, uint(1), rec.RuleID)
}

func TestComputeTotal(t *testing.T) {
	svc := NewInsulinService(&fakeInsulinRepo{})

	total, err := svc.ComputeTotal(2, 0.1, 50)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, total, 1e-9)

	total, err = svc.ComputeTotal(2, 0.1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, total, 1e-9)
}

func TestComputeTotalRejectsBadCarbs(t *testing.T) {
	svc := NewInsulinService(&fakeInsulinRepo{})

	for _, carbs := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := svc.ComputeTotal(2, 0.1, carbs)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
}

func TestConfirmPersistsRecord(t *testing.T) {
	repo := &fakeInsulinRepo{}
	svc := NewInsulinService(repo)
	givenAt := time.Date(2024, 3, 15, 18, 35, 0, 0, time.Local)
	svc.now = func() time.Time { return givenAt }

	id, err := svc.Confirm(context.Background(), 42, 7, "Rapid-acting", 7.0, "before dinner")

	require.NoError(t, err)
	require.Len(t, repo.records, 1)
	record := repo.records[0]
	assert.Equal(t, id, record.ID)
	assert.Equal(t, uint(42), record.PatientID)
	assert.Equal(t, uint(7), record.MeasurementID)
	assert.Equal(t, 7.0, record.TotalUnits)
	assert.Equal(t, givenAt, record.GivenAt)
}

func TestConfirmValidation(t *testing.T) {
	svc := NewInsulinService(&fakeInsulinRepo{})
	ctx := context.Background()

	_, err := svc.Confirm(ctx, 42, 7, "", 5, "")
	assert.Error(t, err)

	_, err = svc.Confirm(ctx, 42, 7, "Rapid-acting", -5, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestQuoteIsPure(t *testing.T) {
	repo := &fakeInsulinRepo{rules: postMealRules()}
	svc := NewInsulinService(repo)
	ctx := context.Background()

	_, err := svc.Recommend(ctx, 205, domain.MealContextPostMeal)
	require.NoError(t, err)
	_, err = svc.ComputeTotal(4, 0.1, 30)
	require.NoError(t, err)

	// Neither the quote nor the total computation writes anything.
	assert.Empty(t, repo.records)
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name    string
		rules   []domain.InsulinRecommendationRule
		wantErr bool
	}{
		{
			"disjoint ranges pass",
			postMealRules(),
			false,
		},
		{
			"same range different context passes",
			[]domain.InsulinRecommendationRule{
				{ID: 1, MinLevel: 100, MaxLevel: 200, MealContext: domain.MealContextFasting},
				{ID: 2, MinLevel: 100, MaxLevel: 200, MealContext: domain.MealContextPostMeal},
			},
			false,
		},
		{
			"overlap within context fails",
			[]domain.InsulinRecommendationRule{
				{ID: 1, MinLevel: 100, MaxLevel: 200, MealContext: domain.MealContextFasting},
				{ID: 2, MinLevel: 200, MaxLevel: 250, MealContext: domain.MealContextFasting},
			},
			true,
		},
		{
			"inverted range fails",
			[]domain.InsulinRecommendationRule{
				{ID: 1, MinLevel: 250, MaxLevel: 100, MealContext: domain.MealContextFasting},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewInsulinService(&fakeInsulinRepo{rules: tt.rules})
			err := svc.ValidateRules(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
