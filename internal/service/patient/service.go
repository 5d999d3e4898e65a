package patient

import (
	"context"
	"errors"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		DNI:      req.DNI,
		Name:     req.Name,
		LastName: req.LastName,
		DateBorn: req.DateBorn,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Email:    req.Email,
		Street:   req.Street,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Country:  req.Country,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, apperrors.Store(err)
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Store(err)
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, int, error) {
	patients, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, apperrors.Store(err)
	}
	return patients, total, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.IsAdmitted != nil {
		patient.IsAdmitted = *req.IsAdmitted
	}
	if req.Street != nil {
		patient.Street = req.Street
	}
	if req.City != nil {
		patient.City = req.City
	}
	if req.State != nil {
		patient.State = req.State
	}
	if req.ZipCode != nil {
		patient.ZipCode = req.ZipCode
	}
	if req.Country != nil {
		patient.Country = req.Country
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Store(err)
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.NotFound("patient", err)
		}
		return apperrors.Store(err)
	}
	return nil
}
