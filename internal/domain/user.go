package domain

import (
	"time"
)

type User struct {
	ID               int64      `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email,omitempty"`
	Phone            string     `json:"phone"`
	PasswordHash     string     `json:"-"`
	Role             UserRole   `json:"role"`
	ParentID         *int64     `json:"parent_id,omitempty"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	InsuranceCarrier string     `json:"insurance_carrier,omitempty"`
	InsuranceNumber  string     `json:"insurance_number,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type UserRole string

const (
	UserRolePatient UserRole = "patient"
	UserRoleAdmin   UserRole = "admin"
)

// IsChild — дочерний профиль, привязанный к родительскому аккаунту.
func (u *User) IsChild() bool {
	return u.ParentID != nil
}

type CreateUserDTO struct {
	FirstName        string   `json:"first_name" binding:"required"`
	LastName         string   `json:"last_name" binding:"required"`
	Email            string   `json:"email" binding:"omitempty,email"`
	Phone            string   `json:"phone" binding:"required"`
	Password         string   `json:"password" binding:"required,min=6"`
	Role             UserRole `json:"role" binding:"omitempty,oneof=patient admin"`
	ParentID         *int64   `json:"parent_id"`
	DateOfBirth      *string  `json:"date_of_birth"`
	InsuranceCarrier string   `json:"insurance_carrier"`
	InsuranceNumber  string   `json:"insurance_number"`
}

type UpdateUserDTO struct {
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone"`
	DateOfBirth      *string `json:"date_of_birth"`
	InsuranceCarrier *string `json:"insurance_carrier"`
	InsuranceNumber  *string `json:"insurance_number"`
	IsActive         *bool   `json:"is_active"`
}

type CreateChildDTO struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	DateOfBirth *string `json:"date_of_birth"`
}

type UpdateChildDTO struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
}

type PasswordUpdateDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
