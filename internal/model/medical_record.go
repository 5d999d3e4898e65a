package model

import (
	"time"
)

type MedicalRecord struct {
	ID             int64     `db:"id" json:"id"`
	DoctorID       int64     `db:"doctor_id" json:"doctorId"`
	PatientID      int64     `db:"patient_id" json:"patientsId"`
	ReasonForVisit string    `db:"reason_for_visit" json:"reasonForVisit"`
	Diagnosis      string    `db:"diagnosis" json:"diagnosis"`
	Treatment      *string   `db:"treatment" json:"treatment,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateMedicalRecordRequest struct {
	DoctorID       int64   `json:"doctorId" binding:"required,gt=0"`
	PatientsID     int64   `json:"patientsId" binding:"required,gt=0"`
	ReasonForVisit string  `json:"reasonForVisit" binding:"required"`
	Diagnosis      string  `json:"diagnosis" binding:"required"`
	Treatment      *string `json:"treatment,omitempty"`
}
