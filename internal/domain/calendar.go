package domain

import (
	"time"
)

// ClinicDaySetting — режим работы клиники для одного дня недели
// (0=воскресенье .. 6=суббота). Время хранится как "HH:MM" по местной
// таймзоне клиники.
type ClinicDaySetting struct {
	ID        int64     `json:"id"`
	DayOfWeek int       `json:"day_of_week"`
	IsOpen    bool      `json:"is_open"`
	OpenTime  string    `json:"open_time"`
	CloseTime string    `json:"close_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateClinicDaySettingDTO struct {
	IsOpen    *bool   `json:"is_open"`
	OpenTime  *string `json:"open_time"`
	CloseTime *string `json:"close_time"`
}

// ClosedDay — конкретная дата, когда клиника закрыта независимо от дня недели.
type ClosedDay struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateClosedDayDTO struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// DentistUnavailability — интервал в конкретную дату, когда врач недоступен
// для записи (обед, отпуск и т.п.).
type DentistUnavailability struct {
	ID        int64     `json:"id"`
	DentistID int64     `json:"dentist_id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUnavailabilityDTO struct {
	DentistID int64  `json:"dentist_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
}

type UpdateUnavailabilityDTO struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Reason    *string `json:"reason"`
}

type UnavailabilityFilter struct {
	DentistID *int64     `json:"dentist_id"`
	Date      *time.Time `json:"date"`
}
