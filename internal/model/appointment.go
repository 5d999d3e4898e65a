package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "PENDING"
	AppointmentStatusInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusCompleted  AppointmentStatus = "COMPLETED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusInProgress, AppointmentStatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted
}

type Specialty string

const (
	SpecialtyGeneralMedicine Specialty = "GENERAL_MEDICINE"
	SpecialtyCardiology      Specialty = "CARDIOLOGY"
	SpecialtyDermatology     Specialty = "DERMATOLOGY"
	SpecialtyNeurology       Specialty = "NEUROLOGY"
	SpecialtyPediatrics      Specialty = "PEDIATRICS"
	SpecialtyTraumatology    Specialty = "TRAUMATOLOGY"
)

func (s Specialty) Valid() bool {
	switch s {
	case SpecialtyGeneralMedicine, SpecialtyCardiology, SpecialtyDermatology,
		SpecialtyNeurology, SpecialtyPediatrics, SpecialtyTraumatology:
		return true
	}
	return false
}

type Appointment struct {
	ID          int64             `db:"id" json:"id"`
	PatientID   int64             `db:"patient_id" json:"patientsId"`
	Specialty   *Specialty        `db:"specialty" json:"specialty,omitempty"`
	Status      AppointmentStatus `db:"status" json:"status"`
	ScheduledAt *time.Time        `db:"scheduled_at" json:"scheduledAt,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updatedAt"`
}

type CreateAppointmentRequest struct {
	PatientsID  int64              `json:"patientsId" validate:"required,gt=0" binding:"required,gt=0"`
	Specialty   *Specialty         `json:"specialty,omitempty" validate:"omitempty,oneof=GENERAL_MEDICINE CARDIOLOGY DERMATOLOGY NEUROLOGY PEDIATRICS TRAUMATOLOGY" binding:"omitempty,oneof=GENERAL_MEDICINE CARDIOLOGY DERMATOLOGY NEUROLOGY PEDIATRICS TRAUMATOLOGY"`
	Status      *AppointmentStatus `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	ScheduledAt *time.Time         `json:"scheduledAt,omitempty"`
}

type UpdateAppointmentRequest struct {
	Specialty   *Specialty         `json:"specialty,omitempty" binding:"omitempty,oneof=GENERAL_MEDICINE CARDIOLOGY DERMATOLOGY NEUROLOGY PEDIATRICS TRAUMATOLOGY"`
	Status      *AppointmentStatus `json:"status,omitempty" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	ScheduledAt *time.Time         `json:"scheduledAt,omitempty"`
}

// AppointmentStatusFilter extends AppointmentStatus with ALL for the
// REST list endpoint.
type AppointmentStatusFilter string

const AppointmentFilterAll AppointmentStatusFilter = "ALL"

func (f AppointmentStatusFilter) Valid() bool {
	return f == AppointmentFilterAll || AppointmentStatus(f).Valid()
}
