package repository

import (
	"context"
	"errors"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	apperrors "github.com/medtrack/diabetes-monitor/internal/errors"
	"gorm.io/gorm"
)

// PatientRepository handles patient data operations
type PatientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// GetByID gets a patient by primary key
func (r *PatientRepository) GetByID(ctx context.Context, id uint) (*domain.Patient, error) {
	var patient domain.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPatientNotFound.WithContext("patient_id", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &patient, nil
}

// GetByNationalID gets a patient by their national identity number
func (r *PatientRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Patient, error) {
	var patient domain.Patient
	if err := r.db.WithContext(ctx).Where("national_id = ?", nationalID).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPatientNotFound.WithContext("national_id", nationalID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &patient, nil
}
