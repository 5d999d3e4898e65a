package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

const (
	listCacheKey  = "doctors:list"
	cacheTTL      = 5 * time.Minute
	cacheCleaning = 10 * time.Minute
)

type Service struct {
	repo  repository.DoctorRepository
	cache *cache.Cache
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleaning),
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		AccountID:     req.AccountID,
		Specialty:     req.Specialty,
		LicenceNumber: req.LicenceNumber,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, apperrors.Store(err)
	}
	s.cache.Delete(listCacheKey)
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	if cached, ok := s.cache.Get(doctorCacheKey(id)); ok {
		return cached.(*model.Doctor), nil
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Store(err)
	}

	s.cache.Set(doctorCacheKey(id), doctor, cache.DefaultExpiration)
	return doctor, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	s.cache.Set(listCacheKey, doctors, cache.DefaultExpiration)
	return doctors, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Store(err)
	}

	if req.Specialty != nil {
		doctor.Specialty = *req.Specialty
	}
	if req.LicenceNumber != nil {
		doctor.LicenceNumber = *req.LicenceNumber
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Store(err)
	}

	s.cache.Delete(doctorCacheKey(id))
	s.cache.Delete(listCacheKey)
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return apperrors.NotFound("doctor", err)
		}
		return apperrors.Store(err)
	}
	s.cache.Delete(doctorCacheKey(id))
	s.cache.Delete(listCacheKey)
	return nil
}

func doctorCacheKey(id int64) string {
	return fmt.Sprintf("doctors:%d", id)
}
