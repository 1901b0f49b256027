package services

import (
	"context"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	"github.com/medtrack/diabetes-monitor/internal/logger"
)

// Clinical thresholds in mg/dL.
const (
	hypoThreshold  = 70
	hyperThreshold = 200
)

const (
	hypoMessage        = "Risk of hypoglycemia, may require urgent intervention."
	hyperMessage       = "Hyperglycemic state, may require urgent intervention."
	timeWarningMessage = "Measurement taken outside standard windows. Please measure at the designated times."
)

// AlertDraft is an evaluated alert that has not been bound to a patient or
// persisted yet.
type AlertDraft struct {
	Kind    domain.AlertKind
	Message string
}

// EvaluateGlucose derives 0-2 alert drafts from a sugar level and the
// window-validity flag. The level rules and the time rule are independent,
// so an out-of-window hypoglycemic reading yields both drafts.
func EvaluateGlucose(level float64, isValidTime bool) []AlertDraft {
	var drafts []AlertDraft

	if level < hypoThreshold {
		drafts = append(drafts, AlertDraft{domain.AlertKindHypoglycemia, hypoMessage})
	} else if level > hyperThreshold {
		drafts = append(drafts, AlertDraft{domain.AlertKindHyperglycemia, hyperMessage})
	}

	if !isValidTime {
		drafts = append(drafts, AlertDraft{domain.AlertKindTimeWarning, timeWarningMessage})
	}

	return drafts
}

type AlertService struct {
	alerts domain.AlertRepository
	now    func() time.Time
}

func NewAlertService(alerts domain.AlertRepository) *AlertService {
	return &AlertService{
		alerts: alerts,
		now:    time.Now,
	}
}

// Raise validates and persists a single alert, returning it with its
// assigned id.
func (s *AlertService) Raise(ctx context.Context, patientID uint, kind domain.AlertKind, message string) (*domain.Alert, error) {
	alert, err := domain.NewAlert(patientID, kind, message, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// RaiseGlucoseAlerts evaluates the glucose rules and persists each
// resulting alert individually. Persistence is best-effort: a failed write
// is logged and skipped so the already-committed measurement is never
// affected. The successfully persisted alerts are returned.
func (s *AlertService) RaiseGlucoseAlerts(ctx context.Context, patientID uint, level float64, isValidTime bool, at time.Time) []domain.Alert {
	drafts := EvaluateGlucose(level, isValidTime)

	raised := make([]domain.Alert, 0, len(drafts))
	for _, draft := range drafts {
		alert, err := domain.NewAlert(patientID, draft.Kind, draft.Message, at)
		if err != nil {
			logger.Error("Failed to build alert", "kind", draft.Kind, "error", err)
			continue
		}
		if err := s.alerts.Create(ctx, alert); err != nil {
			logger.Error("Failed to persist alert",
				"patient_id", patientID, "kind", draft.Kind, "error", err)
			continue
		}
		raised = append(raised, *alert)
	}
	return raised
}

// ListAlerts returns a patient's alerts, optionally only unread ones.
func (s *AlertService) ListAlerts(ctx context.Context, patientID uint, unreadOnly bool) ([]domain.Alert, error) {
	return s.alerts.List(ctx, patientID, unreadOnly)
}

// MarkAlertRead sets the read flag on an alert.
func (s *AlertService) MarkAlertRead(ctx context.Context, alertID uint) error {
	return s.alerts.MarkRead(ctx, alertID)
}
