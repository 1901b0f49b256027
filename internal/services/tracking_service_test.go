package services

import (
	"context"
	"testing"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackingFixture() (*TrackingService, *fakeTrackingRepo) {
	repo := newFakeTrackingRepo()
	repo.dietTypes = []domain.DietType{
		{ID: 1, Name: "Low sugar diet"},
		{ID: 2, Name: "Balanced diet"},
	}
	repo.exerciseTypes = []domain.ExerciseType{
		{ID: 1, Name: "Walking"},
		{ID: 2, Name: "Swimming"},
	}
	svc := NewTrackingService(repo)
	svc.now = func() time.Time {
		return time.Date(2024, 3, 15, 14, 0, 0, 0, time.Local)
	}
	return svc, repo
}

func TestUpsertTwiceKeepsOneEntryAndIdentity(t *testing.T) {
	svc, repo := newTrackingFixture()
	ctx := context.Background()

	first, err := svc.LogDiet(ctx, 42, "Low sugar diet", "")
	require.NoError(t, err)

	second, err := svc.LogDiet(ctx, 42, "Balanced diet", "felt hungry")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, repo.entries, 1)

	entries, err := svc.DailyEntries(ctx, 42, domain.CategoryDiet, svc.now())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// The second submission overwrote the first's fields in place.
	assert.Equal(t, uint(2), entries[0].TypeID)
	assert.Equal(t, "felt hungry", entries[0].Notes)
	assert.Equal(t, domain.StatusCompleted, entries[0].Status)
}

func TestUpsertSeparatesCategoriesAndDays(t *testing.T) {
	svc, repo := newTrackingFixture()
	ctx := context.Background()

	_, err := svc.LogDiet(ctx, 42, "Low sugar diet", "")
	require.NoError(t, err)
	_, err = svc.LogExercise(ctx, 42, "Walking", 30, "")
	require.NoError(t, err)

	assert.Len(t, repo.entries, 2)

	// An explicit different date creates a separate entry.
	yesterday := time.Date(2024, 3, 14, 10, 0, 0, 0, time.Local)
	_, err = svc.UpsertDailyTracking(ctx, 42, domain.CategoryDiet, 1, &yesterday, nil, domain.StatusCompleted, "")
	require.NoError(t, err)
	assert.Len(t, repo.entries, 3)
}

func TestUpsertWritesFinalStatusDirectly(t *testing.T) {
	svc, repo := newTrackingFixture()

	_, err := svc.UpsertDailyTracking(context.Background(), 42, domain.CategoryDiet, 1, nil, nil, domain.StatusSkipped, "traveling")
	require.NoError(t, err)

	for _, e := range repo.entries {
		assert.Equal(t, domain.StatusSkipped, e.Status)
	}
}

func TestUpsertRejectsInvalidCategory(t *testing.T) {
	svc, _ := newTrackingFixture()

	_, err := svc.UpsertDailyTracking(context.Background(), 42, domain.TrackingCategory("sleep"), 1, nil, nil, domain.StatusCompleted, "")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
}

func TestExerciseDurationValidation(t *testing.T) {
	svc, _ := newTrackingFixture()
	ctx := context.Background()

	_, err := svc.LogExercise(ctx, 42, "Walking", 0, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.LogExercise(ctx, 42, "Walking", 241, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.LogExercise(ctx, 42, "Walking", 240, "")
	assert.NoError(t, err)

	// Exercise without a duration is rejected before any write.
	_, err = svc.UpsertDailyTracking(ctx, 42, domain.CategoryExercise, 1, nil, nil, domain.StatusCompleted, "")
	assert.Error(t, err)
}

func TestLogDietUnknownType(t *testing.T) {
	svc, repo := newTrackingFixture()

	_, err := svc.LogDiet(context.Background(), 42, "Keto", "")

	assert.ErrorIs(t, err, apperrors.ErrTypeRefNotFound)
	assert.Empty(t, repo.entries)
}
