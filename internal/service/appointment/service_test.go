package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

type fakeAppointmentRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*model.Appointment

	// when set, called before UpdateStatus evaluates the row; lets tests
	// interleave a concurrent writer between read and conditional write.
	beforeUpdateStatus func()

	// failUpdates makes the next N conditional writes report a lost race
	// without touching the row, mimicking a writer that flipped the
	// status away and back between read and write.
	failUpdates int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{rows: make(map[int64]*model.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	apt.ID = f.nextID
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt
	cp := *apt
	f.rows[apt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id int64) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apt, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	cp := *apt
	return &cp, nil
}

func (f *fakeAppointmentRepo) ListActive(_ context.Context) ([]*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Appointment
	for id := int64(1); id <= f.nextID; id++ {
		apt, ok := f.rows[id]
		if !ok || apt.Status == model.AppointmentStatusCompleted {
			continue
		}
		cp := *apt
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, status *model.AppointmentStatus) ([]*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Appointment
	for id := int64(1); id <= f.nextID; id++ {
		apt, ok := f.rows[id]
		if !ok {
			continue
		}
		if status != nil && apt.Status != *status {
			continue
		}
		cp := *apt
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, from, to model.AppointmentStatus) (*model.Appointment, error) {
	if f.beforeUpdateStatus != nil {
		f.beforeUpdateStatus()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdates > 0 {
		f.failUpdates--
		return nil, repository.ErrNoRows
	}
	apt, ok := f.rows[id]
	if !ok || apt.Status != from {
		return nil, repository.ErrNoRows
	}
	apt.Status = to
	apt.UpdatedAt = time.Now()
	cp := *apt
	return &cp, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, apt *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[apt.ID]; !ok {
		return repository.ErrNoRows
	}
	cp := *apt
	cp.UpdatedAt = time.Now()
	f.rows[apt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAppointmentRepo) setStatus(id int64, status model.AppointmentStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[id].Status = status
}

type fakePatientRepo struct {
	patients map[int64]*model.Patient
}

func newFakePatientRepo(ids ...int64) *fakePatientRepo {
	f := &fakePatientRepo{patients: make(map[int64]*model.Patient)}
	for _, id := range ids {
		f.patients[id] = &model.Patient{ID: id, Name: "Paciente", Email: "p@example.com"}
	}
	return f
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	return p, nil
}

func (f *fakePatientRepo) List(_ context.Context, _ *model.PatientFilters) ([]*model.Patient, int, error) {
	return nil, 0, nil
}

func (f *fakePatientRepo) Update(_ context.Context, _ *model.Patient) error { return nil }

func (f *fakePatientRepo) SetAdmitted(_ context.Context, _ int64, _ bool) error { return nil }

func (f *fakePatientRepo) Delete(_ context.Context, _ int64) error { return nil }

func newTestService(t *testing.T) (*Service, *fakeAppointmentRepo) {
	t.Helper()
	repo := newFakeAppointmentRepo()
	return NewService(repo, newFakePatientRepo(1)), repo
}

func TestCreateAppointment(t *testing.T) {
	svc, _ := newTestService(t)

	apt, ev, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), apt.ID)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	require.NotNil(t, ev)
	assert.Equal(t, EventCreated, ev.Type)
	assert.Equal(t, apt.ID, ev.ID)
}

func TestCreateAppointmentUnknownPatient(t *testing.T) {
	svc, _ := newTestService(t)

	_, ev, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{PatientsID: 42})
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, ev)
}

func TestCreateAppointmentRejectsNonPositiveID(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{PatientsID: 0})
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}

func TestListActiveExcludesCompleted(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	first, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)
	second, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)
	repo.setStatus(second.ID, model.AppointmentStatusCompleted)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)
}

func TestUpdateRoutesStatusThroughTransitionRules(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	completed := model.AppointmentStatusCompleted
	_, err = svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{Status: &completed})
	assert.True(t, apperrors.IsInvalidTransition(err))

	inProgress := model.AppointmentStatusInProgress
	updated, err := svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusInProgress, updated.Status)
}

func TestDeleteAppointment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	_, ev, err := svc.Delete(ctx, apt.ID)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, EventDeleted, ev.Type)
	assert.Equal(t, apt.ID, ev.ID)

	_, err = svc.Get(ctx, apt.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteUnknownAppointment(t *testing.T) {
	svc, _ := newTestService(t)

	_, ev, err := svc.Delete(context.Background(), 99)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, ev)
}
