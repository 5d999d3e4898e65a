package model

import (
	"time"
)

type Doctor struct {
	ID            int64     `db:"id" json:"id"`
	AccountID     int64     `db:"account_id" json:"account_id"`
	Specialty     Specialty `db:"specialty" json:"specialty"`
	LicenceNumber string    `db:"licence_number" json:"licenceNumber"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateDoctorRequest struct {
	AccountID     int64     `json:"account_id" binding:"required,gt=0"`
	Specialty     Specialty `json:"specialty" binding:"required,oneof=GENERAL_MEDICINE CARDIOLOGY DERMATOLOGY NEUROLOGY PEDIATRICS TRAUMATOLOGY"`
	LicenceNumber string    `json:"licenceNumber" binding:"required"`
}

type UpdateDoctorRequest struct {
	Specialty     *Specialty `json:"specialty,omitempty" binding:"omitempty,oneof=GENERAL_MEDICINE CARDIOLOGY DERMATOLOGY NEUROLOGY PEDIATRICS TRAUMATOLOGY"`
	LicenceNumber *string    `json:"licenceNumber,omitempty"`
}
