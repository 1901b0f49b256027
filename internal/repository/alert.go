package repository

import (
	"context"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
	"gorm.io/gorm"
)

// AlertRepository handles alert persistence
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create persists a new alert and fills in its id
func (r *AlertRepository) Create(ctx context.Context, a *domain.Alert) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// List returns a patient's alerts, newest first, optionally only unread ones
func (r *AlertRepository) List(ctx context.Context, patientID uint, unreadOnly bool) ([]domain.Alert, error) {
	query := r.db.WithContext(ctx).Where("patient_id = ?", patientID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var alerts []domain.Alert
	if err := query.Order("alert_time DESC").Find(&alerts).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return alerts, nil
}

// MarkRead sets the read flag on a single alert
func (r *AlertRepository) MarkRead(ctx context.Context, alertID uint) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Alert{}).
		Where("id = ?", alertID).
		Update("is_read", true)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAlertNotFound.WithContext("alert_id", alertID)
	}
	return nil
}
