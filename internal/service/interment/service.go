package interment

import (
	"context"
	"errors"
	"time"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

type Service struct {
	repo     repository.IntermentRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

func NewService(repo repository.IntermentRepository, patients repository.PatientRepository, doctors repository.DoctorRepository) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
	}
}

// Create opens an admission episode and marks the patient as admitted.
func (s *Service) Create(ctx context.Context, req *model.CreateIntermentRequest) (*model.Interment, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
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

	status := model.AppointmentStatusPending
	if req.Status != nil {
		status = *req.Status
	}

	interment := &model.Interment{
		DoctorID:      req.DoctorID,
		PatientID:     req.PatientID,
		Status:        status,
		AdmissionDate: time.Now(),
		DischargeDate: req.DischargeDate,
	}

	if err := s.repo.Create(ctx, interment); err != nil {
		return nil, apperrors.Store(err)
	}

	for i := range req.Diagnoses {
		diagnosis := &model.Diagnosis{
			IntermentID: interment.ID,
			Code:        req.Diagnoses[i].Code,
			Description: req.Diagnoses[i].Description,
			Category:    req.Diagnoses[i].Category,
		}
		if err := s.repo.AddDiagnosis(ctx, diagnosis); err != nil {
			return nil, apperrors.Store(err)
		}
		interment.Diagnoses = append(interment.Diagnoses, *diagnosis)
	}

	if err := s.patients.SetAdmitted(ctx, req.PatientID, true); err != nil {
		return nil, apperrors.Store(err)
	}

	return interment, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Interment, error) {
	interment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("interment", err)
		}
		return nil, apperrors.Store(err)
	}

	diagnoses, err := s.repo.ListDiagnoses(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	interment.Diagnoses = diagnoses
	return interment, nil
}

// Update patches the admission; setting a discharge date or completing the
// episode releases the admitted flag on the patient.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateIntermentRequest) (*model.Interment, error) {
	interment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		interment.Status = *req.Status
	}
	if req.DischargeDate != nil {
		interment.DischargeDate = req.DischargeDate
	}

	if err := s.repo.Update(ctx, interment); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("interment", err)
		}
		return nil, apperrors.Store(err)
	}

	if interment.DischargeDate != nil || interment.Status == model.AppointmentStatusCompleted {
		if err := s.patients.SetAdmitted(ctx, interment.PatientID, false); err != nil {
			return nil, apperrors.Store(err)
		}
	}

	return interment, nil
}

func (s *Service) AddDiagnosis(ctx context.Context, intermentID int64, req *model.CreateDiagnosisRequest) (*model.Diagnosis, error) {
	if _, err := s.repo.Get(ctx, intermentID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("interment", err)
		}
		return nil, apperrors.Store(err)
	}

	diagnosis := &model.Diagnosis{
		IntermentID: intermentID,
		Code:        req.Code,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := s.repo.AddDiagnosis(ctx, diagnosis); err != nil {
		return nil, apperrors.Store(err)
	}
	return diagnosis, nil
}
