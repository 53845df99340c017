package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"isadental/internal/domain"
)

type Repositories struct {
	User            UserRepository
	Auth            AuthRepository
	Dentist         DentistRepository
	Specialty       SpecialtyRepository
	AppointmentType AppointmentTypeRepository
	Appointment     AppointmentRepository
	Calendar        CalendarRepository
	Unavailability  UnavailabilityRepository
	Reminder        ReminderRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:            NewUserRepository(db),
		Auth:            NewAuthRepository(db),
		Dentist:         NewDentistRepository(db),
		Specialty:       NewSpecialtyRepository(db),
		AppointmentType: NewAppointmentTypeRepository(db),
		Appointment:     NewAppointmentRepository(db),
		Calendar:        NewCalendarRepository(db),
		Unavailability:  NewUnavailabilityRepository(db),
		Reminder:        NewReminderRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	ListChildren(ctx context.Context, parentID *int64) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type DentistRepository interface {
	Create(ctx context.Context, dentist domain.CreateDentistDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Dentist, error)
	Update(ctx context.Context, id int64, dentist domain.UpdateDentistDTO) error
	UpdateImageURL(ctx context.Context, id int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Dentist, int, error)
}

type SpecialtyRepository interface {
	Create(ctx context.Context, specialty domain.CreateSpecialtyDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialty, error)
	Update(ctx context.Context, id int64, specialty domain.UpdateSpecialtyDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Specialty, error)
}

type AppointmentTypeRepository interface {
	Create(ctx context.Context, appointmentType domain.CreateAppointmentTypeDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error)
	Update(ctx context.Context, id int64, appointmentType domain.UpdateAppointmentTypeDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.AppointmentType, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, userID int64, appointment domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, appointment domain.UpdateAppointmentDTO) error
	SetCheckedIn(ctx context.Context, id int64, checkedIn bool) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)

	// ScheduledIntervals возвращает занятые интервалы врача со статусом
	// scheduled в окне [from, to); длительность каждого интервала
	// разрешается через актуальный тип приема прямо в выборке.
	ScheduledIntervals(ctx context.Context, dentistID int64, from, to time.Time, excludeID *int64) ([]domain.BookedInterval, error)

	// DayBookings возвращает приемы врача со статусом scheduled за день
	// [dayStart, dayEnd), отсортированные по времени начала.
	DayBookings(ctx context.Context, dentistID int64, dayStart, dayEnd time.Time, excludeID *int64) ([]domain.DayBooking, error)
}

type CalendarRepository interface {
	ListDaySettings(ctx context.Context) ([]domain.ClinicDaySetting, error)
	GetDaySetting(ctx context.Context, dayOfWeek int) (*domain.ClinicDaySetting, error)
	UpdateDaySetting(ctx context.Context, id int64, dto domain.UpdateClinicDaySettingDTO) error

	ListClosedDays(ctx context.Context) ([]domain.ClosedDay, error)
	ClosedDayExists(ctx context.Context, date time.Time) (bool, error)
	CreateClosedDay(ctx context.Context, dto domain.CreateClosedDayDTO) (int64, error)
	DeleteClosedDay(ctx context.Context, id int64) error
}

type UnavailabilityRepository interface {
	Create(ctx context.Context, dto domain.CreateUnavailabilityDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.DentistUnavailability, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUnavailabilityDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.UnavailabilityFilter) ([]domain.DentistUnavailability, error)
	ListForDentistOnDate(ctx context.Context, dentistID int64, date time.Time) ([]domain.DentistUnavailability, error)
}

type ReminderRepository interface {
	Create(ctx context.Context, appointmentID int64, sendAt time.Time) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.AppointmentReminder, error)
	List(ctx context.Context, filter domain.ReminderFilter) ([]domain.AppointmentReminder, int, error)
	ListDue(ctx context.Context, before time.Time) ([]domain.AppointmentReminder, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
	Update(ctx context.Context, id int64, dto domain.UpdateReminderDTO) error
	DeleteByAppointmentID(ctx context.Context, appointmentID int64) error
}
