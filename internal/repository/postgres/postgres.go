package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/careops/hospital-api/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type doctorRepository struct {
	db *sqlx.DB
}

type medicalRecordRepository struct {
	db *sqlx.DB
}

type prescriptionRepository struct {
	db *sqlx.DB
}

type intermentRepository struct {
	db *sqlx.DB
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{db: db}
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func NewIntermentRepository(db *sqlx.DB) repository.IntermentRepository {
	return &intermentRepository{db: db}
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}
