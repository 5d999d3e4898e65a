package model

import (
	"time"
)

type Prescription struct {
	ID              int64     `db:"id" json:"id"`
	MedicalRecordID int64     `db:"medical_record_id" json:"medicalRecordId"`
	Medication      string    `db:"medication" json:"medication"`
	Dosage          string    `db:"dosage" json:"dosage"`
	Duration        string    `db:"duration" json:"duration"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

type CreatePrescriptionRequest struct {
	MedicalRecordID int64  `json:"medicalRecordId" binding:"required,gt=0"`
	Medication      string `json:"medication" binding:"required"`
	Dosage          string `json:"dosage" binding:"required"`
	Duration        string `json:"duration" binding:"required"`
}
