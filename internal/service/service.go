package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"isadental/config"
	"isadental/internal/domain"
	"isadental/internal/repository"
	"isadental/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Location    *time.Location
}

type Services struct {
	User            UserService
	Auth            AuthService
	Dentist         DentistService
	Specialty       SpecialtyService
	AppointmentType AppointmentTypeService
	Availability    AvailabilityService
	Appointment     AppointmentService
	Calendar        CalendarService
	Unavailability  UnavailabilityService
	Reminder        ReminderService
}

func NewServices(deps Deps) *Services {
	availability := NewAvailabilityService(deps.Repos.Appointment, deps.Repos.Calendar, deps.Repos.Unavailability, deps.Location, deps.Logger)
	reminder := NewReminderService(deps.Repos.Reminder, deps.Location, deps.Logger)

	return &Services{
		User:            NewUserService(deps.Repos.User, deps.Logger),
		Auth:            NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Dentist:         NewDentistService(deps.Repos.Dentist, deps.Repos.Specialty, deps.FileStorage, deps.Logger),
		Specialty:       NewSpecialtyService(deps.Repos.Specialty, deps.Logger),
		AppointmentType: NewAppointmentTypeService(deps.Repos.AppointmentType, deps.Logger),
		Availability:    availability,
		Appointment:     NewAppointmentService(deps.Repos.Appointment, deps.Repos.AppointmentType, deps.Repos.Dentist, deps.Repos.User, availability, reminder, deps.Logger),
		Calendar:        NewCalendarService(deps.Repos.Calendar, deps.Logger),
		Unavailability:  NewUnavailabilityService(deps.Repos.Unavailability, deps.Repos.Dentist, deps.Logger),
		Reminder:        reminder,
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)

	CreateChild(ctx context.Context, parentID int64, dto domain.CreateChildDTO) (int64, error)
	UpdateChild(ctx context.Context, parentID, childID int64, dto domain.UpdateChildDTO) error
	ListChildren(ctx context.Context, parentID *int64) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type DentistService interface {
	Create(ctx context.Context, dto domain.CreateDentistDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Dentist, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDentistDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Dentist, int, error)

	UploadImage(ctx context.Context, dentistID int64, image []byte, filename string) (string, error)
}

type SpecialtyService interface {
	Create(ctx context.Context, dto domain.CreateSpecialtyDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialty, error)
	Update(ctx context.Context, id int64, dto domain.UpdateSpecialtyDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Specialty, error)
}

type AppointmentTypeService interface {
	Create(ctx context.Context, dto domain.CreateAppointmentTypeDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentTypeDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.AppointmentType, error)
}

// AvailabilityService — движок доступности: чистая проверка кандидата на
// запись по текущему состоянию календаря, блокировок и расписания врача.
type AvailabilityService interface {
	Evaluate(ctx context.Context, params domain.EvaluateParams) (domain.Verdict, error)
	DayBookings(ctx context.Context, dentistID int64, date string, excludeAppointmentID *int64) (*domain.DaySchedule, error)
}

type AppointmentService interface {
	Create(ctx context.Context, userID int64, dto domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error
	Cancel(ctx context.Context, id int64) error
	CheckIn(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
}

type CalendarService interface {
	ListDaySettings(ctx context.Context) ([]domain.ClinicDaySetting, error)
	UpdateDaySetting(ctx context.Context, id int64, dto domain.UpdateClinicDaySettingDTO) error

	ListClosedDays(ctx context.Context) ([]domain.ClosedDay, error)
	CreateClosedDay(ctx context.Context, dto domain.CreateClosedDayDTO) (int64, error)
	DeleteClosedDay(ctx context.Context, id int64) error
}

type UnavailabilityService interface {
	Create(ctx context.Context, dto domain.CreateUnavailabilityDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.DentistUnavailability, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUnavailabilityDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.UnavailabilityFilter) ([]domain.DentistUnavailability, error)
}

type ReminderService interface {
	CreateForAppointment(ctx context.Context, appointmentID int64, appointmentTime time.Time) error
	ResetForAppointment(ctx context.Context, appointmentID int64, appointmentTime time.Time) error
	List(ctx context.Context, filter domain.ReminderFilter) ([]domain.AppointmentReminder, int, error)
	Update(ctx context.Context, id int64, dto domain.UpdateReminderDTO) error
	DeriveSendTimes(appointmentTime time.Time) (dayBefore, dayOf time.Time)
	DispatchDue(ctx context.Context, now time.Time) error
	RunDispatcher(ctx context.Context, interval time.Duration)
}

func PointerTo[T any](v T) *T {
	return &v
}
