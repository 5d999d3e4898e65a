package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	"github.com/careops/hospital-api/pkg/auth"
	apperrors "github.com/careops/hospital-api/pkg/errors"
	"github.com/careops/hospital-api/pkg/security"
)

// WelcomeNotifier sends a best-effort welcome message after registration.
type WelcomeNotifier interface {
	SendWelcome(ctx context.Context, to string, name string) error
}

type Service struct {
	accounts repository.AccountRepository
	hasher   security.PasswordHasher
	jwt      auth.JWTService
	notifier WelcomeNotifier
	logger   zerolog.Logger
}

func NewService(accounts repository.AccountRepository, hasher security.PasswordHasher, jwt auth.JWTService) *Service {
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		jwt:      jwt,
	}
}

// WithNotifier attaches an optional welcome notifier.
func (s *Service) WithNotifier(n WelcomeNotifier, logger zerolog.Logger) *Service {
	s.notifier = n
	s.logger = logger
	return s
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if _, err := s.accounts.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Conflict("email already registered", nil)
	} else if !errors.Is(err, repository.ErrNoRows) {
		return nil, apperrors.Store(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	account := &model.Account{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperrors.Store(err)
	}

	token, err := s.jwt.GenerateAccessToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendWelcome(ctx, account.Email, account.FullName); err != nil {
			s.logger.Warn().Err(err).Str("email", account.Email).Msg("failed to send welcome email")
		}
	}

	return &model.AuthResponse{Token: token, Account: account}, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
		}
		return nil, apperrors.Store(err)
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	token, err := s.jwt.GenerateAccessToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.AuthResponse{Token: token, Account: account}, nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.TokenClaims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}
