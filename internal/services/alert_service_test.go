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

func TestEvaluateGlucose(t *testing.T) {
	tests := []struct {
		name      string
		level     float64
		validTime bool
		wantKinds []domain.AlertKind
	}{
		{"hypo boundary", 69, true, []domain.AlertKind{domain.AlertKindHypoglycemia}},
		{"normal low boundary", 70, true, nil},
		{"normal mid", 135, true, nil},
		{"normal high boundary", 200, true, nil},
		{"hyper boundary", 201, true, []domain.AlertKind{domain.AlertKindHyperglycemia}},
		{"time warning only", 135, false, []domain.AlertKind{domain.AlertKindTimeWarning}},
		{"hypo and time warning", 50, false, []domain.AlertKind{domain.AlertKindHypoglycemia, domain.AlertKindTimeWarning}},
		{"hyper and time warning", 300, false, []domain.AlertKind{domain.AlertKindHyperglycemia, domain.AlertKindTimeWarning}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts := EvaluateGlucose(tt.level, tt.validTime)
			var kinds []domain.AlertKind
			for _, d := range drafts {
				kinds = append(kinds, d.Kind)
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestRaiseGlucoseAlertsPersistsEachDraft(t *testing.T) {
	repo := &fakeAlertRepo{}
	svc := NewAlertService(repo)
	at := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)

	raised := svc.RaiseGlucoseAlerts(context.Background(), 42, 50, false, at)

	require.Len(t, raised, 2)
	require.Len(t, repo.alerts, 2)
	assert.Equal(t, domain.AlertKindHypoglycemia, raised[0].Kind)
	assert.Equal(t, domain.AlertKindTimeWarning, raised[1].Kind)
	for _, a := range raised {
		assert.Equal(t, uint(42), a.PatientID)
		assert.Equal(t, domain.PriorityNormal, a.Priority)
		assert.False(t, a.IsRead)
		assert.Equal(t, at, a.AlertTime)
		assert.NotZero(t, a.ID)
	}
}

func TestRaiseGlucoseAlertsBestEffort(t *testing.T) {
	repo := &fakeAlertRepo{failCreate: apperrors.ErrDatabaseError}
	svc := NewAlertService(repo)

	raised := svc.RaiseGlucoseAlerts(context.Background(), 42, 250, true, time.Now())

	// The failed write is skipped, not surfaced.
	assert.Empty(t, raised)
}

func TestRaiseRejectsUnknownKind(t *testing.T) {
	svc := NewAlertService(&fakeAlertRepo{})

	_, err := svc.Raise(context.Background(), 42, domain.AlertKind("sms_blast"), "nope")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAlertKind)
}

func TestListAlertsUnreadOnly(t *testing.T) {
	repo := &fakeAlertRepo{}
	svc := NewAlertService(repo)
	ctx := context.Background()

	first, err := svc.Raise(ctx, 42, domain.AlertKindGeneral, "first")
	require.NoError(t, err)
	_, err = svc.Raise(ctx, 42, domain.AlertKindGeneral, "second")
	require.NoError(t, err)

	require.NoError(t, svc.MarkAlertRead(ctx, first.ID))

	unread, err := svc.ListAlerts(ctx, 42, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "second", unread[0].Message)

	all, err := svc.ListAlerts(ctx, 42, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMarkAlertReadNotFound(t *testing.T) {
	svc := NewAlertService(&fakeAlertRepo{})

	err := svc.MarkAlertRead(context.Background(), 999)

	assert.ErrorIs(t, err, apperrors.ErrAlertNotFound)
}
