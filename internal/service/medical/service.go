package medical

import (
	"context"
	"errors"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

type Service struct {
	repo     repository.MedicalRecordRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

func NewService(repo repository.MedicalRecordRepository, patients repository.PatientRepository, doctors repository.DoctorRepository) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	if _, err := s.patients.Get(ctx, req.PatientsID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Store(err)
	}
	if _, err := s.doctors.Get(ctx, req.DoctorID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Store(err)
	}

	record := &model.MedicalRecord{
		DoctorID:       req.DoctorID,
		PatientID:      req.PatientsID,
		ReasonForVisit: req.ReasonForVisit,
		Diagnosis:      req.Diagnosis,
		Treatment:      req.Treatment,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, apperrors.Store(err)
	}
	return record, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.MedicalRecord, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("medical record", err)
		}
		return nil, apperrors.Store(err)
	}
	return record, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Store(err)
	}

	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return records, nil
}
