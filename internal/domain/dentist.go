package domain

import (
	"time"
)

type Dentist struct {
	ID             int64      `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	SpecialtyID    *int64     `json:"specialty_id"`
	Specialty      *Specialty `json:"specialty,omitempty"`
	Qualifications string     `json:"qualifications,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type CreateDentistDTO struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	SpecialtyID    *int64 `json:"specialty_id"`
	Qualifications string `json:"qualifications"`
}

type UpdateDentistDTO struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	SpecialtyID    *int64  `json:"specialty_id"`
	Qualifications *string `json:"qualifications"`
}

type Specialty struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateSpecialtyDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateSpecialtyDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
