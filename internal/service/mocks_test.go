package service

import (
	"context"
	"time"

	"isadental/internal/domain"
)

// Фейковые репозитории держат состояние в памяти и записывают вызовы,
// чтобы тесты могли проверять и результат, и обращения к хранилищу.

type fakeCalendarRepo struct {
	settings   map[int]*domain.ClinicDaySetting
	closedDays map[string]bool
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{
		settings:   make(map[int]*domain.ClinicDaySetting),
		closedDays: make(map[string]bool),
	}
}

func (r *fakeCalendarRepo) openDay(dayOfWeek int, openTime, closeTime string) {
	r.settings[dayOfWeek] = &domain.ClinicDaySetting{
		ID:        int64(dayOfWeek) + 1,
		DayOfWeek: dayOfWeek,
		IsOpen:    true,
		OpenTime:  openTime,
		CloseTime: closeTime,
	}
}

func (r *fakeCalendarRepo) closedDayOfWeek(dayOfWeek int) {
	r.settings[dayOfWeek] = &domain.ClinicDaySetting{
		ID:        int64(dayOfWeek) + 1,
		DayOfWeek: dayOfWeek,
		IsOpen:    false,
	}
}

func (r *fakeCalendarRepo) ListDaySettings(_ context.Context) ([]domain.ClinicDaySetting, error) {
	var settings []domain.ClinicDaySetting
	for day := 0; day < 7; day++ {
		if setting, ok := r.settings[day]; ok {
			settings = append(settings, *setting)
		}
	}
	return settings, nil
}

func (r *fakeCalendarRepo) GetDaySetting(_ context.Context, dayOfWeek int) (*domain.ClinicDaySetting, error) {
	return r.settings[dayOfWeek], nil
}

func (r *fakeCalendarRepo) UpdateDaySetting(_ context.Context, id int64, dto domain.UpdateClinicDaySettingDTO) error {
	for _, setting := range r.settings {
		if setting.ID != id {
			continue
		}
		if dto.IsOpen != nil {
			setting.IsOpen = *dto.IsOpen
		}
		if dto.OpenTime != nil {
			setting.OpenTime = *dto.OpenTime
		}
		if dto.CloseTime != nil {
			setting.CloseTime = *dto.CloseTime
		}
	}
	return nil
}

func (r *fakeCalendarRepo) ListClosedDays(_ context.Context) ([]domain.ClosedDay, error) {
	return nil, nil
}

func (r *fakeCalendarRepo) ClosedDayExists(_ context.Context, date time.Time) (bool, error) {
	return r.closedDays[date.Format("2006-01-02")], nil
}

func (r *fakeCalendarRepo) CreateClosedDay(_ context.Context, dto domain.CreateClosedDayDTO) (int64, error) {
	r.closedDays[dto.Date] = true
	return int64(len(r.closedDays)), nil
}

func (r *fakeCalendarRepo) DeleteClosedDay(_ context.Context, _ int64) error {
	return nil
}

type fakeUnavailabilityRepo struct {
	blocks []domain.DentistUnavailability
}

func (r *fakeUnavailabilityRepo) Create(_ context.Context, dto domain.CreateUnavailabilityDTO) (int64, error) {
	date, _ := time.Parse("2006-01-02", dto.Date)
	block := domain.DentistUnavailability{
		ID:        int64(len(r.blocks)) + 1,
		DentistID: dto.DentistID,
		Date:      date,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Reason:    dto.Reason,
	}
	r.blocks = append(r.blocks, block)
	return block.ID, nil
}

func (r *fakeUnavailabilityRepo) GetByID(_ context.Context, id int64) (*domain.DentistUnavailability, error) {
	for i := range r.blocks {
		if r.blocks[i].ID == id {
			return &r.blocks[i], nil
		}
	}
	return nil, nil
}

func (r *fakeUnavailabilityRepo) Update(_ context.Context, _ int64, _ domain.UpdateUnavailabilityDTO) error {
	return nil
}

func (r *fakeUnavailabilityRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (r *fakeUnavailabilityRepo) List(_ context.Context, _ domain.UnavailabilityFilter) ([]domain.DentistUnavailability, error) {
	return r.blocks, nil
}

func (r *fakeUnavailabilityRepo) ListForDentistOnDate(_ context.Context, dentistID int64, date time.Time) ([]domain.DentistUnavailability, error) {
	var result []domain.DentistUnavailability
	for _, block := range r.blocks {
		if block.DentistID == dentistID && block.Date.Equal(date) {
			result = append(result, block)
		}
	}
	return result, nil
}

type createdAppointment struct {
	userID int64
	dto    domain.CreateAppointmentDTO
}

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	intervals    []domain.BookedInterval
	bookings     []domain.DayBooking

	created         []createdAppointment
	updated         map[int64]domain.UpdateAppointmentDTO
	checkedIn       []int64
	createErr       error
	updateErr       error
	dayBookingCalls int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: make(map[int64]*domain.Appointment),
		updated:      make(map[int64]domain.UpdateAppointmentDTO),
	}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, userID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.created = append(r.created, createdAppointment{userID: userID, dto: dto})
	return int64(len(r.created)), nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	return r.appointments[id], nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated[id] = dto
	return nil
}

func (r *fakeAppointmentRepo) SetCheckedIn(_ context.Context, id int64, checkedIn bool) error {
	if checkedIn {
		r.checkedIn = append(r.checkedIn, id)
	}
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, _ domain.AppointmentFilter) ([]domain.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) CountByFilter(_ context.Context, _ domain.AppointmentFilter) (int, error) {
	return 0, nil
}

func (r *fakeAppointmentRepo) ScheduledIntervals(_ context.Context, _ int64, _, _ time.Time, excludeID *int64) ([]domain.BookedInterval, error) {
	var result []domain.BookedInterval
	for _, interval := range r.intervals {
		if excludeID != nil && interval.AppointmentID == *excludeID {
			continue
		}
		result = append(result, interval)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) DayBookings(_ context.Context, _ int64, _, _ time.Time, excludeID *int64) ([]domain.DayBooking, error) {
	r.dayBookingCalls++
	var result []domain.DayBooking
	for _, booking := range r.bookings {
		if excludeID != nil && booking.ID == *excludeID {
			continue
		}
		result = append(result, booking)
	}
	return result, nil
}

type fakeReminderRepo struct {
	reminders  []domain.AppointmentReminder
	due        []domain.AppointmentReminder
	markedSent []int64
	deletedFor []int64
}

func (r *fakeReminderRepo) Create(_ context.Context, appointmentID int64, sendAt time.Time) (int64, error) {
	id := int64(len(r.reminders)) + 1
	r.reminders = append(r.reminders, domain.AppointmentReminder{
		ID:            id,
		AppointmentID: appointmentID,
		SendAt:        sendAt,
		Status:        domain.ReminderStatusPending,
	})
	return id, nil
}

func (r *fakeReminderRepo) GetByID(_ context.Context, id int64) (*domain.AppointmentReminder, error) {
	for i := range r.reminders {
		if r.reminders[i].ID == id {
			return &r.reminders[i], nil
		}
	}
	return nil, nil
}

func (r *fakeReminderRepo) List(_ context.Context, _ domain.ReminderFilter) ([]domain.AppointmentReminder, int, error) {
	return r.reminders, len(r.reminders), nil
}

func (r *fakeReminderRepo) ListDue(_ context.Context, before time.Time) ([]domain.AppointmentReminder, error) {
	var due []domain.AppointmentReminder
	for _, reminder := range r.due {
		if !reminder.Sent && !reminder.SendAt.After(before) {
			due = append(due, reminder)
		}
	}
	return due, nil
}

func (r *fakeReminderRepo) MarkSent(_ context.Context, id int64, _ time.Time) error {
	r.markedSent = append(r.markedSent, id)
	return nil
}

func (r *fakeReminderRepo) Update(_ context.Context, _ int64, _ domain.UpdateReminderDTO) error {
	return nil
}

func (r *fakeReminderRepo) DeleteByAppointmentID(_ context.Context, appointmentID int64) error {
	r.deletedFor = append(r.deletedFor, appointmentID)
	var kept []domain.AppointmentReminder
	for _, reminder := range r.reminders {
		if reminder.AppointmentID != appointmentID {
			kept = append(kept, reminder)
		}
	}
	r.reminders = kept
	return nil
}

type fakeUserRepo struct {
	users   map[int64]*domain.User
	created []domain.CreateUserDTO
}

func (r *fakeUserRepo) Create(_ context.Context, dto domain.CreateUserDTO) (int64, error) {
	r.created = append(r.created, dto)
	return int64(len(r.created)) + 100, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, _ string) (*domain.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, _ int64, _ domain.UpdateUserDTO) error {
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, _ int64, _ string) error {
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) ListChildren(_ context.Context, _ *int64) ([]domain.User, error) {
	return nil, nil
}

type fakeDentistRepo struct {
	dentists map[int64]*domain.Dentist
}

func (r *fakeDentistRepo) Create(_ context.Context, _ domain.CreateDentistDTO) (int64, error) {
	return 0, nil
}

func (r *fakeDentistRepo) GetByID(_ context.Context, id int64) (*domain.Dentist, error) {
	return r.dentists[id], nil
}

func (r *fakeDentistRepo) Update(_ context.Context, _ int64, _ domain.UpdateDentistDTO) error {
	return nil
}

func (r *fakeDentistRepo) UpdateImageURL(_ context.Context, _ int64, _ string) error {
	return nil
}

func (r *fakeDentistRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (r *fakeDentistRepo) List(_ context.Context, _, _ int) ([]domain.Dentist, int, error) {
	return nil, 0, nil
}

type fakeAppointmentTypeRepo struct {
	types map[int64]*domain.AppointmentType
}

func (r *fakeAppointmentTypeRepo) Create(_ context.Context, _ domain.CreateAppointmentTypeDTO) (int64, error) {
	return 0, nil
}

func (r *fakeAppointmentTypeRepo) GetByID(_ context.Context, id int64) (*domain.AppointmentType, error) {
	return r.types[id], nil
}

func (r *fakeAppointmentTypeRepo) Update(_ context.Context, _ int64, _ domain.UpdateAppointmentTypeDTO) error {
	return nil
}

func (r *fakeAppointmentTypeRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (r *fakeAppointmentTypeRepo) List(_ context.Context) ([]domain.AppointmentType, error) {
	return nil, nil
}

// availabilityStub подменяет движок доступности фиксированным вердиктом и
// запоминает параметры последнего вызова.
type availabilityStub struct {
	verdict    domain.Verdict
	err        error
	lastParams domain.EvaluateParams
	calls      int
}

func (s *availabilityStub) Evaluate(_ context.Context, params domain.EvaluateParams) (domain.Verdict, error) {
	s.calls++
	s.lastParams = params
	return s.verdict, s.err
}

func (s *availabilityStub) DayBookings(_ context.Context, _ int64, _ string, _ *int64) (*domain.DaySchedule, error) {
	return nil, nil
}

// failingSender имитирует отказ канала доставки напоминаний.
type failingSender struct {
	failIDs map[int64]bool
	sent    []int64
}

func (s *failingSender) Send(_ context.Context, reminder domain.AppointmentReminder) error {
	if s.failIDs[reminder.ID] {
		return errSendFailed
	}
	s.sent = append(s.sent, reminder.ID)
	return nil
}
