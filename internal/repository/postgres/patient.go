package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
)

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			dni, name, last_name, date_born, gender, phone, email,
			is_admitted, street, city, state, zip_code, country,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	err := r.db.GetContext(ctx, &patient.ID, query,
		patient.DNI,
		patient.Name,
		patient.LastName,
		patient.DateBorn,
		patient.Gender,
		patient.Phone,
		patient.Email,
		patient.IsAdmitted,
		patient.Street,
		patient.City,
		patient.State,
		patient.ZipCode,
		patient.Country,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `
		SELECT id, dni, name, last_name, date_born, gender, phone, email,
			   is_admitted, street, city, state, zip_code, country,
			   created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, int, error) {
	where := ""
	args := []interface{}{}
	if filters.IsAdmitted != nil {
		where = " WHERE is_admitted = $1"
		args = append(args, *filters.IsAdmitted)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM patients"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := `
		SELECT id, dni, name, last_name, date_born, gender, phone, email,
			   is_admitted, street, city, state, zip_code, country,
			   created_at, updated_at
		FROM patients
	` + where + fmt.Sprintf(" ORDER BY id ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	args = append(args, pageSize, (page-1)*pageSize)

	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, last_name = $2, gender = $3, phone = $4, email = $5,
			is_admitted = $6, street = $7, city = $8, state = $9,
			zip_code = $10, country = $11, updated_at = $12
		WHERE id = $13
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.LastName,
		patient.Gender,
		patient.Phone,
		patient.Email,
		patient.IsAdmitted,
		patient.Street,
		patient.City,
		patient.State,
		patient.ZipCode,
		patient.Country,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
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

func (r *patientRepository) SetAdmitted(ctx context.Context, id int64, admitted bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE patients SET is_admitted = $1, updated_at = $2 WHERE id = $3",
		admitted, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set admitted flag: %w", err)
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

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM patients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
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
