package domain

import (
	"time"
)

type ReminderStatus string

const (
	ReminderStatusPending ReminderStatus = "pending"
	ReminderStatusSent    ReminderStatus = "sent"
)

// AppointmentReminder — напоминание о приеме: в день приема и за сутки до него.
type AppointmentReminder struct {
	ID            int64          `json:"id"`
	AppointmentID int64          `json:"appointment_id"`
	SendAt        time.Time      `json:"send_at"`
	Sent          bool           `json:"sent"`
	SentAt        *time.Time     `json:"sent_at,omitempty"`
	Status        ReminderStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type UpdateReminderDTO struct {
	Sent *bool `json:"sent"`
}

type ReminderFilter struct {
	AppointmentID *int64 `json:"appointment_id"`
	Sent          *bool  `json:"sent"`
	Limit         int    `json:"limit"`
	Offset        int    `json:"offset"`
}
