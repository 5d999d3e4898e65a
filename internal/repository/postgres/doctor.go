package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
)

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (account_id, specialty, licence_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	err := r.db.GetContext(ctx, &doctor.ID, query,
		doctor.AccountID,
		doctor.Specialty,
		doctor.LicenceNumber,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `
		SELECT id, account_id, specialty, licence_number, created_at, updated_at
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT id, account_id, specialty, licence_number, created_at, updated_at
		FROM doctors
		ORDER BY id ASC
	`
	doctors := []*model.Doctor{}
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET specialty = $1, licence_number = $2, updated_at = $3
		WHERE id = $4
	`
	doctor.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		doctor.Specialty,
		doctor.LicenceNumber,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
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

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM doctors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
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
