package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
)

func (r *intermentRepository) Create(ctx context.Context, interment *model.Interment) error {
	query := `
		INSERT INTO interments (
			doctor_id, patient_id, status, admission_date, discharge_date,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	now := time.Now()
	interment.CreatedAt = now
	interment.UpdatedAt = now
	if interment.AdmissionDate.IsZero() {
		interment.AdmissionDate = now
	}

	err := r.db.GetContext(ctx, &interment.ID, query,
		interment.DoctorID,
		interment.PatientID,
		interment.Status,
		interment.AdmissionDate,
		interment.DischargeDate,
		interment.CreatedAt,
		interment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create interment: %w", err)
	}
	return nil
}

func (r *intermentRepository) Get(ctx context.Context, id int64) (*model.Interment, error) {
	query := `
		SELECT id, doctor_id, patient_id, status, admission_date, discharge_date,
			   created_at, updated_at
		FROM interments
		WHERE id = $1
	`
	var interment model.Interment
	if err := r.db.GetContext(ctx, &interment, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return &interment, nil
}

func (r *intermentRepository) Update(ctx context.Context, interment *model.Interment) error {
	query := `
		UPDATE interments
		SET status = $1, discharge_date = $2, updated_at = $3
		WHERE id = $4
	`
	interment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		interment.Status,
		interment.DischargeDate,
		interment.UpdatedAt,
		interment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update interment: %w", err)
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

func (r *intermentRepository) AddDiagnosis(ctx context.Context, diagnosis *model.Diagnosis) error {
	query := `
		INSERT INTO diagnoses (interment_id, code, description, category, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	diagnosis.CreatedAt = time.Now()

	err := r.db.GetContext(ctx, &diagnosis.ID, query,
		diagnosis.IntermentID,
		diagnosis.Code,
		diagnosis.Description,
		diagnosis.Category,
		diagnosis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add diagnosis: %w", err)
	}
	return nil
}

func (r *intermentRepository) ListDiagnoses(ctx context.Context, intermentID int64) ([]model.Diagnosis, error) {
	query := `
		SELECT id, interment_id, code, description, category, created_at
		FROM diagnoses
		WHERE interment_id = $1
		ORDER BY id ASC
	`
	diagnoses := []model.Diagnosis{}
	if err := r.db.SelectContext(ctx, &diagnoses, query, intermentID); err != nil {
		return nil, fmt.Errorf("failed to list diagnoses: %w", err)
	}
	return diagnoses, nil
}
