package services

import (
	"context"

	"github.com/medtrack/diabetes-monitor/internal/domain"
)

// PatientService resolves patients for the presentation layer. Registration
// and credentials live outside this core.
type PatientService struct {
	patients domain.PatientRepository
}

func NewPatientService(patients domain.PatientRepository) *PatientService {
	return &PatientService{patients: patients}
}

// GetByNationalID looks a patient up by national identity number.
func (s *PatientService) GetByNationalID(ctx context.Context, nationalID string) (*domain.Patient, error) {
	return s.patients.GetByNationalID(ctx, nationalID)
}

// GetByID looks a patient up by primary key.
func (s *PatientService) GetByID(ctx context.Context, id uint) (*domain.Patient, error) {
	return s.patients.GetByID(ctx, id)
}
