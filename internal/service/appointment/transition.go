package appointment

import (
	"context"
	"errors"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

// The only legal forward edges. COMPLETED is terminal and the direct
// PENDING to COMPLETED skip is rejected.
func allowedTransition(from, to model.AppointmentStatus) bool {
	switch {
	case from == model.AppointmentStatusPending && to == model.AppointmentStatusInProgress:
		return true
	case from == model.AppointmentStatusInProgress && to == model.AppointmentStatusCompleted:
		return true
	}
	return false
}

const transitionAttempts = 2

// Transition moves an appointment to the target status. Requesting the
// current status is an idempotent no-op and returns a nil event. The write
// is conditional on the status read here, so a concurrent writer cannot
// slip an illegal edge past the state machine; on a lost race the rules are
// re-evaluated against the fresh row.
func (s *Service) Transition(ctx context.Context, id int64, target model.AppointmentStatus) (*model.Appointment, *Event, error) {
	if !target.Valid() {
		return nil, nil, apperrors.Validation("unknown appointment status", nil)
	}

	for attempt := 0; attempt < transitionAttempts; attempt++ {
		apt, err := s.Get(ctx, id)
		if err != nil {
			return nil, nil, err
		}

		if apt.Status == target {
			return apt, nil, nil
		}
		if !allowedTransition(apt.Status, target) {
			return nil, nil, apperrors.InvalidTransition(string(apt.Status), string(target))
		}

		updated, err := s.repo.UpdateStatus(ctx, id, apt.Status, target)
		if err == nil {
			return updated, &Event{
				Type:        EventStatusChanged,
				ID:          id,
				Appointment: updated,
				OldStatus:   apt.Status,
				NewStatus:   target,
			}, nil
		}
		if !errors.Is(err, repository.ErrNoRows) {
			return nil, nil, apperrors.Store(err)
		}
		// Row changed (or vanished) between read and write; loop to
		// re-read and re-check the rules.
	}

	return nil, nil, apperrors.Conflict("appointment status changed concurrently", nil)
}
