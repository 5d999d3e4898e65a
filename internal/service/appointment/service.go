package appointment

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

// EventType identifies a domain event produced by a successful mutation.
type EventType string

const (
	EventCreated       EventType = "created"
	EventStatusChanged EventType = "status_changed"
	EventDeleted       EventType = "deleted"
)

// Event describes a committed appointment mutation. The realtime layer
// turns events into broadcast messages; the REST path discards them.
type Event struct {
	Type        EventType
	ID          int64
	Appointment *model.Appointment
	OldStatus   model.AppointmentStatus
	NewStatus   model.AppointmentStatus
}

// Notifier sends best-effort confirmations; a notification failure never
// fails the triggering request.
type Notifier interface {
	SendAppointmentConfirmation(ctx context.Context, patient *model.Patient, apt *model.Appointment) error
}

type Service struct {
	repo     repository.AppointmentRepository
	patients repository.PatientRepository
	notifier Notifier
	logger   zerolog.Logger
}

func NewService(repo repository.AppointmentRepository, patients repository.PatientRepository) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
	}
}

// WithNotifier attaches an optional confirmation notifier.
func (s *Service) WithNotifier(n Notifier, logger zerolog.Logger) *Service {
	s.notifier = n
	s.logger = logger
	return s
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, *Event, error) {
	if req.PatientsID <= 0 {
		return nil, nil, apperrors.Validation("patientsId must be a positive integer", nil)
	}

	patient, err := s.patients.Get(ctx, req.PatientsID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, nil, apperrors.NotFound("patient", err)
		}
		return nil, nil, apperrors.Store(err)
	}

	status := model.AppointmentStatusPending
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, nil, apperrors.Validation("unknown appointment status", nil)
		}
		status = *req.Status
	}
	if req.Specialty != nil && !req.Specialty.Valid() {
		return nil, nil, apperrors.Validation("unknown specialty", nil)
	}

	apt := &model.Appointment{
		PatientID:   req.PatientsID,
		Specialty:   req.Specialty,
		Status:      status,
		ScheduledAt: req.ScheduledAt,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, nil, apperrors.Store(err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendAppointmentConfirmation(ctx, patient, apt); err != nil {
			s.logger.Warn().Err(err).Int64("appointment_id", apt.ID).Msg("confirmation email failed")
		}
	}

	return apt, &Event{Type: EventCreated, ID: apt.ID, Appointment: apt, NewStatus: apt.Status}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Store(err)
	}
	return apt, nil
}

// ListActive returns the PENDING and IN_PROGRESS appointments in creation
// order; this is the snapshot served to reconnecting dashboard sessions.
func (s *Service) ListActive(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return appointments, nil
}

func (s *Service) List(ctx context.Context, filter model.AppointmentStatusFilter) ([]*model.Appointment, error) {
	var status *model.AppointmentStatus
	if filter != "" && filter != model.AppointmentFilterAll {
		if !filter.Valid() {
			return nil, apperrors.Validation("unknown status filter", nil)
		}
		st := model.AppointmentStatus(filter)
		status = &st
	}

	appointments, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return appointments, nil
}

// Update applies a partial update from the REST surface. Status changes go
// through the same transition rules as the realtime path.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != apt.Status {
		if !allowedTransition(apt.Status, *req.Status) {
			return nil, apperrors.InvalidTransition(string(apt.Status), string(*req.Status))
		}
		apt.Status = *req.Status
	}
	if req.Specialty != nil {
		apt.Specialty = req.Specialty
	}
	if req.ScheduledAt != nil {
		apt.ScheduledAt = req.ScheduledAt
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Store(err)
	}
	return apt, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*model.Appointment, *Event, error) {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, nil, apperrors.NotFound("appointment", err)
		}
		return nil, nil, apperrors.Store(err)
	}

	return apt, &Event{Type: EventDeleted, ID: id, OldStatus: apt.Status}, nil
}
