package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/careops/hospital-api/internal/model"
)

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (medical_record_id, medication, dosage, duration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	now := time.Now()
	prescription.CreatedAt = now
	prescription.UpdatedAt = now

	err := r.db.GetContext(ctx, &prescription.ID, query,
		prescription.MedicalRecordID,
		prescription.Medication,
		prescription.Dosage,
		prescription.Duration,
		prescription.CreatedAt,
		prescription.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	query := `
		SELECT id, medical_record_id, medication, dosage, duration, created_at, updated_at
		FROM prescriptions
		WHERE id = $1
	`
	var prescription model.Prescription
	if err := r.db.GetContext(ctx, &prescription, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByMedicalRecord(ctx context.Context, medicalRecordID int64) ([]*model.Prescription, error) {
	query := `
		SELECT id, medical_record_id, medication, dosage, duration, created_at, updated_at
		FROM prescriptions
		WHERE medical_record_id = $1
		ORDER BY created_at DESC
	`
	prescriptions := []*model.Prescription{}
	if err := r.db.SelectContext(ctx, &prescriptions, query, medicalRecordID); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}
