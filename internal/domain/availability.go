package domain

import (
	"time"
)

// RejectionReason — диагностическая причина отказа движка доступности.
// Проверки выполняются в фиксированном порядке, возвращается первая
// сработавшая причина.
type RejectionReason string

const (
	ReasonClinicClosedWeekday   RejectionReason = "clinic_closed_weekday"
	ReasonClinicClosedDate      RejectionReason = "clinic_closed_date"
	ReasonOutsideOperatingHours RejectionReason = "outside_operating_hours"
	ReasonDentistUnavailable    RejectionReason = "dentist_unavailable"
	ReasonDentistDoubleBooked   RejectionReason = "dentist_double_booked"
)

// Verdict — решение движка доступности по кандидату на запись.
type Verdict struct {
	Accepted bool            `json:"accepted"`
	Reason   RejectionReason `json:"reason,omitempty"`
}

func VerdictAccepted() Verdict {
	return Verdict{Accepted: true}
}

func VerdictRejected(reason RejectionReason) Verdict {
	return Verdict{Accepted: false, Reason: reason}
}

// EvaluateParams — кандидат на запись: врач, время начала и длительность.
// ExcludeAppointmentID исключает прием из проверки пересечений при переносе,
// чтобы запись не конфликтовала со своей прежней версией.
type EvaluateParams struct {
	DentistID            int64
	StartTime            time.Time
	DurationMinutes      int
	ExcludeAppointmentID *int64
}

// DayBooking — занятый интервал врача для отрисовки календаря на клиенте.
type DayBooking struct {
	ID              int64             `json:"id"`
	AppointmentTime time.Time         `json:"appointment_time"`
	Duration        int               `json:"duration"`
	Status          AppointmentStatus `json:"status"`
}

// DaySchedule — результат запроса занятости врача на день.
type DaySchedule struct {
	Date         string       `json:"date"`
	DentistID    int64        `json:"dentist_id"`
	ClosedDay    bool         `json:"closed_day"`
	Appointments []DayBooking `json:"appointments"`
}

// BookedInterval — уже выбранный из БД интервал расписания врача.
// Длительность разрешается через актуальный тип приема в момент выборки.
type BookedInterval struct {
	AppointmentID int64
	StartTime     time.Time
	Duration      int
}

// End — верхняя граница полуинтервала занятости.
func (b BookedInterval) End() time.Time {
	d := b.Duration
	if d <= 0 {
		d = DefaultAppointmentDuration
	}
	return b.StartTime.Add(time.Duration(d) * time.Minute)
}

// IntervalsOverlap — стандартная проверка пересечения полуинтервалов
// [start1, end1) и [start2, end2): касание границами пересечением не считается.
func IntervalsOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}
