package model

import (
	"time"
)

type DiagnosisCategory string

const (
	DiagnosisCategoryPrimary      DiagnosisCategory = "PRIMARY"
	DiagnosisCategorySecondary    DiagnosisCategory = "SECONDARY"
	DiagnosisCategoryComplication DiagnosisCategory = "COMPLICATION"
)

// Interment is a hospital admission episode for a patient.
type Interment struct {
	ID            int64             `db:"id" json:"id"`
	DoctorID      int64             `db:"doctor_id" json:"doctorId"`
	PatientID     int64             `db:"patient_id" json:"patientId"`
	Status        AppointmentStatus `db:"status" json:"status"`
	AdmissionDate time.Time         `db:"admission_date" json:"admissionDate"`
	DischargeDate *time.Time        `db:"discharge_date" json:"dischargeDate,omitempty"`
	Diagnoses     []Diagnosis       `db:"-" json:"diagnosis,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updatedAt"`
}

type Diagnosis struct {
	ID          int64             `db:"id" json:"id"`
	IntermentID int64             `db:"interment_id" json:"intermentId"`
	Code        string            `db:"code" json:"code"`
	Description string            `db:"description" json:"description"`
	Category    DiagnosisCategory `db:"category" json:"category"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
}

type CreateDiagnosisRequest struct {
	Code        string            `json:"code" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Category    DiagnosisCategory `json:"category" binding:"required,oneof=PRIMARY SECONDARY COMPLICATION"`
}

type CreateIntermentRequest struct {
	DoctorID      int64                    `json:"doctorId" binding:"required,gt=0"`
	PatientID     int64                    `json:"patientId" binding:"required,gt=0"`
	DischargeDate *time.Time               `json:"dischargeDate,omitempty"`
	Status        *AppointmentStatus       `json:"status,omitempty" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Diagnoses     []CreateDiagnosisRequest `json:"diagnosis,omitempty" binding:"omitempty,dive"`
}

type UpdateIntermentRequest struct {
	Status        *AppointmentStatus `json:"status,omitempty" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	DischargeDate *time.Time         `json:"dischargeDate,omitempty"`
}
