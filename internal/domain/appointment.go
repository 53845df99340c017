package domain

import (
	"errors"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// DefaultAppointmentDuration — длительность приема в минутах, если у типа
// приема она не задана.
const DefaultAppointmentDuration = 30

// ErrSlotTaken возвращается слоем хранения, когда конкурентная запись успела
// занять слот между проверкой доступности и фиксацией в БД.
var ErrSlotTaken = errors.New("выбранное время уже занято")

type Appointment struct {
	ID                int64             `json:"id"`
	UserID            int64             `json:"user_id"`
	DentistID         int64             `json:"dentist_id"`
	AppointmentTypeID int64             `json:"appointment_type_id"`
	AppointmentTime   time.Time         `json:"appointment_time"`
	Status            AppointmentStatus `json:"status"`
	CheckedIn         bool              `json:"checked_in"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	UserName        string           `json:"user_name,omitempty"`
	DentistName     string           `json:"dentist_name,omitempty"`
	AppointmentType *AppointmentType `json:"appointment_type,omitempty"`
}

// Duration — длительность приема в минутах с учетом значения по умолчанию.
func (a *Appointment) Duration() int {
	if a.AppointmentType != nil && a.AppointmentType.Duration > 0 {
		return a.AppointmentType.Duration
	}
	return DefaultAppointmentDuration
}

// EndTime — верхняя граница полуинтервала [начало, конец).
func (a *Appointment) EndTime() time.Time {
	return a.AppointmentTime.Add(time.Duration(a.Duration()) * time.Minute)
}

type AppointmentType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DurationOrDefault применяет значение по умолчанию к незаполненной длительности.
func (t *AppointmentType) DurationOrDefault() int {
	if t != nil && t.Duration > 0 {
		return t.Duration
	}
	return DefaultAppointmentDuration
}

type CreateAppointmentDTO struct {
	UserID            *int64    `json:"user_id"`
	DentistID         int64     `json:"dentist_id" binding:"required"`
	AppointmentTypeID int64     `json:"appointment_type_id" binding:"required"`
	AppointmentTime   time.Time `json:"appointment_time" binding:"required"`
	Notes             string    `json:"notes"`
}

type UpdateAppointmentDTO struct {
	DentistID         *int64             `json:"dentist_id"`
	AppointmentTypeID *int64             `json:"appointment_type_id"`
	AppointmentTime   *time.Time         `json:"appointment_time"`
	Status            *AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	Notes             *string            `json:"notes"`
}

type AppointmentFilter struct {
	UserID    *int64             `json:"user_id"`
	DentistID *int64             `json:"dentist_id"`
	Status    *AppointmentStatus `json:"status"`
	StartDate *time.Time         `json:"start_date"`
	EndDate   *time.Time         `json:"end_date"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

type CreateAppointmentTypeDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Duration    int    `json:"duration" binding:"omitempty,min=5,max=480"`
}

type UpdateAppointmentTypeDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration" binding:"omitempty,min=5,max=480"`
}
