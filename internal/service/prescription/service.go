package prescription

import (
	"context"
	"errors"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

type Service struct {
	repo    repository.PrescriptionRepository
	records repository.MedicalRecordRepository
}

func NewService(repo repository.PrescriptionRepository, records repository.MedicalRecordRepository) *Service {
	return &Service{
		repo:    repo,
		records: records,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if _, err := s.records.Get(ctx, req.MedicalRecordID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("medical record", err)
		}
		return nil, apperrors.Store(err)
	}

	prescription := &model.Prescription{
		MedicalRecordID: req.MedicalRecordID,
		Medication:      req.Medication,
		Dosage:          req.Dosage,
		Duration:        req.Duration,
	}

	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, apperrors.Store(err)
	}
	return prescription, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("prescription", err)
		}
		return nil, apperrors.Store(err)
	}
	return prescription, nil
}

func (s *Service) ListByMedicalRecord(ctx context.Context, medicalRecordID int64) ([]*model.Prescription, error) {
	prescriptions, err := s.repo.ListByMedicalRecord(ctx, medicalRecordID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return prescriptions, nil
}
