package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
)

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (patient_id, specialty, status, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	now := time.Now()
	apt.CreatedAt = now
	apt.UpdatedAt = now

	err := r.db.GetContext(ctx, &apt.ID, query,
		apt.PatientID,
		apt.Specialty,
		apt.Status,
		apt.ScheduledAt,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, specialty, status, scheduled_at, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return &apt, nil
}

func (r *appointmentRepository) ListActive(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_id, specialty, status, scheduled_at, created_at, updated_at
		FROM appointments
		WHERE status IN ('PENDING', 'IN_PROGRESS')
		ORDER BY created_at ASC
	`
	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list active appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) List(ctx context.Context, status *model.AppointmentStatus) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_id, specialty, status, scheduled_at, created_at, updated_at
		FROM appointments
	`
	args := []interface{}{}
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, *status)
	}
	query += " ORDER BY updated_at ASC"

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatus is a conditional write: the row must still carry the expected
// current status, which keeps the fetch-validate-write sequence atomic even
// with concurrent writers on the same id.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, from, to model.AppointmentStatus) (*model.Appointment, error) {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING id, patient_id, specialty, status, scheduled_at, created_at, updated_at
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, to, time.Now(), id, from)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET specialty = $1, status = $2, scheduled_at = $3, updated_at = $4
		WHERE id = $5
	`
	apt.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		apt.Specialty,
		apt.Status,
		apt.ScheduledAt,
		apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM appointments
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNoRows
	}
	return nil
}
