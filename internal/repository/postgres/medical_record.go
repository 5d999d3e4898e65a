package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/careops/hospital-api/internal/model"
)

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (
			doctor_id, patient_id, reason_for_visit, diagnosis, treatment,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	err := r.db.GetContext(ctx, &record.ID, query,
		record.DoctorID,
		record.PatientID,
		record.ReasonForVisit,
		record.Diagnosis,
		record.Treatment,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) Get(ctx context.Context, id int64) (*model.MedicalRecord, error) {
	query := `
		SELECT id, doctor_id, patient_id, reason_for_visit, diagnosis, treatment,
			   created_at, updated_at
		FROM medical_records
		WHERE id = $1
	`
	var record model.MedicalRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return &record, nil
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	query := `
		SELECT id, doctor_id, patient_id, reason_for_visit, diagnosis, treatment,
			   created_at, updated_at
		FROM medical_records
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	records := []*model.MedicalRecord{}
	if err := r.db.SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}
