package repository

import (
	"context"
	"errors"

	"github.com/careops/hospital-api/internal/model"
)

// ErrNoRows is returned by repositories when a lookup matches nothing.
// Services translate it into a not-found application error.
var ErrNoRows = errors.New("no rows in result set")

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	// ListActive returns PENDING and IN_PROGRESS appointments ordered by
	// creation time ascending.
	ListActive(ctx context.Context) ([]*model.Appointment, error)
	List(ctx context.Context, status *model.AppointmentStatus) ([]*model.Appointment, error)
	// UpdateStatus applies the status change only if the row still carries
	// the expected current status; it returns ErrNoRows when either the id
	// is unknown or a concurrent writer got there first.
	UpdateStatus(ctx context.Context, id int64, from, to model.AppointmentStatus) (*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	Delete(ctx context.Context, id int64) error
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, int, error)
	Update(ctx context.Context, patient *model.Patient) error
	SetAdmitted(ctx context.Context, id int64, admitted bool) error
	Delete(ctx context.Context, id int64) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id int64) (*model.Doctor, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id int64) error
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, record *model.MedicalRecord) error
	Get(ctx context.Context, id int64) (*model.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *model.Prescription) error
	Get(ctx context.Context, id int64) (*model.Prescription, error)
	ListByMedicalRecord(ctx context.Context, medicalRecordID int64) ([]*model.Prescription, error)
}

type IntermentRepository interface {
	Create(ctx context.Context, interment *model.Interment) error
	Get(ctx context.Context, id int64) (*model.Interment, error)
	Update(ctx context.Context, interment *model.Interment) error
	AddDiagnosis(ctx context.Context, diagnosis *model.Diagnosis) error
	ListDiagnoses(ctx context.Context, intermentID int64) ([]model.Diagnosis, error)
}

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Get(ctx context.Context, id int64) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}
