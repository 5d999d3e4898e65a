package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	"github.com/careops/hospital-api/pkg/auth"
	apperrors "github.com/careops/hospital-api/pkg/errors"
	"github.com/careops/hospital-api/pkg/security"
)

type fakeAccountRepo struct {
	nextID int64
	byID   map[int64]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: make(map[int64]*model.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *model.Account) error {
	f.nextID++
	account.ID = f.nextID
	cp := *account
	f.byID[account.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) Get(_ context.Context, id int64) (*model.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range f.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNoRows
}

func newTestService() *Service {
	return NewService(
		newFakeAccountRepo(),
		security.NewBcryptHasher(4),
		auth.NewJWTService("test-secret", 1),
	)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &model.RegisterRequest{
		FullName: "Ana Torres",
		Email:    "ana@example.com",
		Password: "supersecret",
		Role:     model.RoleDoctor,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleDoctor, resp.Account.Role)
	assert.NotEqual(t, "supersecret", resp.Account.PasswordHash)

	login, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "ana@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	claims, err := svc.ValidateToken(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Account.ID, claims.AccountID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, string(model.RoleDoctor), claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	req := &model.RegisterRequest{
		FullName: "Ana Torres",
		Email:    "ana@example.com",
		Password: "supersecret",
		Role:     model.RoleAdmin,
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		FullName: "Ana Torres",
		Email:    "ana@example.com",
		Password: "supersecret",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "ana@example.com", Password: "wrong-password"})
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}
