package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

type fakeDoctorRepo struct {
	nextID   int64
	rows     map[int64]*model.Doctor
	getCalls int
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{rows: make(map[int64]*model.Doctor)}
}

func (f *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	f.nextID++
	d.ID = f.nextID
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDoctorRepo) Get(_ context.Context, id int64) (*model.Doctor, error) {
	f.getCalls++
	d, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDoctorRepo) List(_ context.Context) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for id := int64(1); id <= f.nextID; id++ {
		if d, ok := f.rows[id]; ok {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeDoctorRepo) Update(_ context.Context, d *model.Doctor) error {
	if _, ok := f.rows[d.ID]; !ok {
		return repository.ErrNoRows
	}
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDoctorRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func TestGetServesFromCache(t *testing.T) {
	repo := newFakeDoctorRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateDoctorRequest{
		AccountID:     1,
		Specialty:     model.SpecialtyCardiology,
		LicenceNumber: "LIC-100",
	})
	require.NoError(t, err)

	first, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	second, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.getCalls)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	repo := newFakeDoctorRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateDoctorRequest{
		AccountID:     1,
		Specialty:     model.SpecialtyCardiology,
		LicenceNumber: "LIC-100",
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)

	newLicence := "LIC-200"
	_, err = svc.Update(ctx, created.ID, &model.UpdateDoctorRequest{LicenceNumber: &newLicence})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "LIC-200", got.LicenceNumber)
}

func TestGetUnknownDoctor(t *testing.T) {
	svc := NewService(newFakeDoctorRepo())

	_, err := svc.Get(context.Background(), 77)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListCachesResult(t *testing.T) {
	repo := newFakeDoctorRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateDoctorRequest{
		AccountID:     1,
		Specialty:     model.SpecialtyNeurology,
		LicenceNumber: "LIC-300",
	})
	require.NoError(t, err)

	doctors, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)

	// A second doctor created behind the service's back stays invisible
	// until the cache entry is invalidated by a service mutation.
	repo.Create(ctx, &model.Doctor{AccountID: 2, Specialty: model.SpecialtyPediatrics})
	doctors, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, doctors, 1)
}
