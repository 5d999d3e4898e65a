package model

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type Patient struct {
	ID         int64     `db:"id" json:"id"`
	DNI        string    `db:"dni" json:"dni"`
	Name       string    `db:"name" json:"name"`
	LastName   string    `db:"last_name" json:"last_name"`
	DateBorn   string    `db:"date_born" json:"date_born"`
	Gender     Gender    `db:"gender" json:"gender"`
	Phone      string    `db:"phone" json:"phone"`
	Email      string    `db:"email" json:"email"`
	IsAdmitted bool      `db:"is_admitted" json:"is_admitted"`
	Street     *string   `db:"street" json:"street,omitempty"`
	City       *string   `db:"city" json:"city,omitempty"`
	State      *string   `db:"state" json:"state,omitempty"`
	ZipCode    *string   `db:"zip_code" json:"zip_code,omitempty"`
	Country    *string   `db:"country" json:"country,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

type CreatePatientRequest struct {
	DNI      string  `json:"dni" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	LastName string  `json:"last_name" binding:"required"`
	DateBorn string  `json:"date_born" binding:"required"`
	Gender   Gender  `json:"gender" binding:"required,oneof=MALE FEMALE"`
	Phone    string  `json:"phone" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Street   *string `json:"street,omitempty"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
	ZipCode  *string `json:"zip_code,omitempty"`
	Country  *string `json:"country,omitempty"`
}

type UpdatePatientRequest struct {
	Name       *string `json:"name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Gender     *Gender `json:"gender,omitempty" binding:"omitempty,oneof=MALE FEMALE"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	IsAdmitted *bool   `json:"is_admitted,omitempty"`
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	ZipCode    *string `json:"zip_code,omitempty"`
	Country    *string `json:"country,omitempty"`
}

type PatientFilters struct {
	IsAdmitted *bool
	Page       int
	PageSize   int
}
