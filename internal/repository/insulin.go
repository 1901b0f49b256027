package repository

import (
	"context"
	"errors"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
	"gorm.io/gorm"
)

// InsulinRepository reads the dosing reference table and persists
// confirmed doses
type InsulinRepository struct {
	db *gorm.DB
}

// NewInsulinRepository creates a new insulin repository
func NewInsulinRepository(db *gorm.DB) *InsulinRepository {
	return &InsulinRepository{db: db}
}

// FirstMatchingRule returns the first reference row covering the level and
// meal context in id order, or nil when no row matches
func (r *InsulinRepository) FirstMatchingRule(ctx context.Context, level float64, meal domain.MealContext) (*domain.InsulinRecommendationRule, error) {
	var rule domain.InsulinRecommendationRule
	err := r.db.WithContext(ctx).
		Where("meal_context = ? AND min_level <= ? AND max_level >= ?", meal, level, level).
		Order("id ASC").
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &rule, nil
}

// ListRules returns the whole reference table in id order
func (r *InsulinRepository) ListRules(ctx context.Context) ([]domain.InsulinRecommendationRule, error) {
	var rules []domain.InsulinRecommendationRule
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rules).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return rules, nil
}

// CreateRecord persists a confirmed insulin dose and fills in its id
func (r *InsulinRepository) CreateRecord(ctx context.Context, record *domain.InsulinRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// ListRecords returns a patient's confirmed doses since the given time,
// newest first
func (r *InsulinRepository) ListRecords(ctx context.Context, patientID uint, since time.Time) ([]domain.InsulinRecord, error) {
	var records []domain.InsulinRecord
	if err := r.db.WithContext(ctx).
		Where("patient_id = ? AND given_at >= ?", patientID, since).
		Order("given_at DESC").
		Find(&records).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return records, nil
}
