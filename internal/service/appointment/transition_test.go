package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-api/internal/model"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

func TestAllowedTransitions(t *testing.T) {
	assert.True(t, allowedTransition(model.AppointmentStatusPending, model.AppointmentStatusInProgress))
	assert.True(t, allowedTransition(model.AppointmentStatusInProgress, model.AppointmentStatusCompleted))

	assert.False(t, allowedTransition(model.AppointmentStatusPending, model.AppointmentStatusCompleted))
	assert.False(t, allowedTransition(model.AppointmentStatusInProgress, model.AppointmentStatusPending))
	assert.False(t, allowedTransition(model.AppointmentStatusCompleted, model.AppointmentStatusPending))
	assert.False(t, allowedTransition(model.AppointmentStatusCompleted, model.AppointmentStatusInProgress))
}

func TestTransitionHappyPath(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	updated, ev, err := svc.Transition(ctx, apt.ID, model.AppointmentStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusInProgress, updated.Status)
	require.NotNil(t, ev)
	assert.Equal(t, EventStatusChanged, ev.Type)
	assert.Equal(t, model.AppointmentStatusPending, ev.OldStatus)
	assert.Equal(t, model.AppointmentStatusInProgress, ev.NewStatus)

	updated, ev, err = svc.Transition(ctx, apt.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)
	require.NotNil(t, ev)
	assert.Equal(t, model.AppointmentStatusCompleted, ev.NewStatus)
}

func TestTransitionSameStatusIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	same, ev, err := svc.Transition(ctx, apt.ID, model.AppointmentStatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, same.Status)
	assert.Nil(t, ev)
}

func TestTransitionRejectsSkip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	_, ev, err := svc.Transition(ctx, apt.ID, model.AppointmentStatusCompleted)
	assert.True(t, apperrors.IsInvalidTransition(err))
	assert.Nil(t, ev)

	// The failed request must not have moved the row.
	current, err := svc.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, current.Status)
}

func TestTransitionCompletedIsTerminal(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)
	repo.setStatus(apt.ID, model.AppointmentStatusCompleted)

	for _, target := range []model.AppointmentStatus{
		model.AppointmentStatusPending,
		model.AppointmentStatusInProgress,
	} {
		_, ev, err := svc.Transition(ctx, apt.ID, target)
		assert.True(t, apperrors.IsInvalidTransition(err))
		assert.Nil(t, ev)
	}
}

func TestTransitionUnknownAppointment(t *testing.T) {
	svc, _ := newTestService(t)

	_, ev, err := svc.Transition(context.Background(), 123, model.AppointmentStatusInProgress)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, ev)
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Transition(context.Background(), 1, model.AppointmentStatus("CANCELLED"))
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}

func TestTransitionLostRaceRechecksRules(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	// A concurrent writer completes the appointment between the read and
	// the conditional write. The retry must re-read and then reject the
	// edge instead of forcing the stale transition through.
	fired := false
	repo.beforeUpdateStatus = func() {
		if !fired {
			fired = true
			repo.setStatus(apt.ID, model.AppointmentStatusCompleted)
		}
	}

	_, ev, err := svc.Transition(ctx, apt.ID, model.AppointmentStatusInProgress)
	assert.True(t, apperrors.IsInvalidTransition(err))
	assert.Nil(t, ev)
}

func TestTransitionExhaustedRetriesConflicts(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	// Every write attempt loses the race while each re-read keeps showing
	// a state that still allows the transition.
	repo.failUpdates = transitionAttempts

	_, ev, err := svc.Transition(ctx, apt.ID, model.AppointmentStatusInProgress)
	assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
	assert.Nil(t, ev)
}
