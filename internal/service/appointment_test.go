package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

type appointmentFixture struct {
	svc          *AppointmentServiceImpl
	repo         *fakeAppointmentRepo
	reminderRepo *fakeReminderRepo
	availability *availabilityStub
}

func newAppointmentFixture() *appointmentFixture {
	repo := newFakeAppointmentRepo()
	reminderRepo := &fakeReminderRepo{}
	availability := &availabilityStub{verdict: domain.VerdictAccepted()}

	users := &fakeUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, FirstName: "Мария", Role: domain.UserRolePatient, IsActive: true},
	}}
	dentists := &fakeDentistRepo{dentists: map[int64]*domain.Dentist{
		2: {ID: 2, FirstName: "Иван", LastName: "Петров"},
	}}
	types := &fakeAppointmentTypeRepo{types: map[int64]*domain.AppointmentType{
		3: {ID: 3, Name: "Осмотр", Duration: 45},
		4: {ID: 4, Name: "Консультация"},
	}}

	reminders := NewReminderService(reminderRepo, clinicLocation, zap.NewNop())

	return &appointmentFixture{
		svc:          NewAppointmentService(repo, types, dentists, users, availability, reminders, zap.NewNop()),
		repo:         repo,
		reminderRepo: reminderRepo,
		availability: availability,
	}
}

func futureTime() time.Time {
	return time.Now().Add(48 * time.Hour).Truncate(time.Minute)
}

func TestAppointmentCreate_PersistsAndSchedulesReminders(t *testing.T) {
	f := newAppointmentFixture()

	id, err := f.svc.Create(context.Background(), 1, domain.CreateAppointmentDTO{
		DentistID:         2,
		AppointmentTypeID: 3,
		AppointmentTime:   futureTime(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.Len(t, f.repo.created, 1)
	assert.Equal(t, int64(1), f.repo.created[0].userID)

	// Длительность для проверки берется из актуального типа приема.
	assert.Equal(t, 45, f.availability.lastParams.DurationMinutes)

	// Два напоминания: за сутки и в день приема.
	assert.Len(t, f.reminderRepo.reminders, 2)
}

func TestAppointmentCreate_UsesDefaultDurationWhenTypeHasNone(t *testing.T) {
	f := newAppointmentFixture()

	_, err := f.svc.Create(context.Background(), 1, domain.CreateAppointmentDTO{
		DentistID:         2,
		AppointmentTypeID: 4,
		AppointmentTime:   futureTime(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppointmentDuration, f.availability.lastParams.DurationMinutes)
}

func TestAppointmentCreate_RejectedSlotNotPersisted(t *testing.T) {
	f := newAppointmentFixture()
	f.availability.verdict = domain.VerdictRejected(domain.ReasonDentistDoubleBooked)

	_, err := f.svc.Create(context.Background(), 1, domain.CreateAppointmentDTO{
		DentistID:         2,
		AppointmentTypeID: 3,
		AppointmentTime:   futureTime(),
	})

	assert.Error(t, err)
	assert.Empty(t, f.repo.created)
	assert.Empty(t, f.reminderRepo.reminders)
}

func TestAppointmentCreate_PastTimeRejected(t *testing.T) {
	f := newAppointmentFixture()

	_, err := f.svc.Create(context.Background(), 1, domain.CreateAppointmentDTO{
		DentistID:         2,
		AppointmentTypeID: 3,
		AppointmentTime:   time.Now().Add(-time.Hour),
	})

	assert.Error(t, err)
	assert.Zero(t, f.availability.calls)
	assert.Empty(t, f.repo.created)
}

func TestAppointmentCreate_SlotTakenRace(t *testing.T) {
	f := newAppointmentFixture()
	f.repo.createErr = domain.ErrSlotTaken

	_, err := f.svc.Create(context.Background(), 1, domain.CreateAppointmentDTO{
		DentistID:         2,
		AppointmentTypeID: 3,
		AppointmentTime:   futureTime(),
	})

	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.Empty(t, f.reminderRepo.reminders)
}

func TestAppointmentUpdate_RescheduleExcludesOwnID(t *testing.T) {
	f := newAppointmentFixture()
	f.repo.appointments[5] = &domain.Appointment{
		ID:                5,
		UserID:            1,
		DentistID:         2,
		AppointmentTypeID: 3,
		AppointmentTime:   futureTime(),
		Status:            domain.AppointmentStatusScheduled,
	}

	newTime := futureTime().Add(2 * time.Hour)
	err := f.svc.Update(context.Background(), 5, domain.UpdateAppointmentDTO{
		AppointmentTime: &newTime,
	})

	require.NoError(t, err)
	require.NotNil(t, f.availability.lastParams.ExcludeAppointmentID)
	assert.Equal(t, int64(5), *f.availability.lastParams.ExcludeAppointmentID)

	// Напоминания пересозданы под новое время.
	assert.Contains(t, f.reminderRepo.deletedFor, int64(5))
	assert.Len(t, f.reminderRepo.reminders, 2)
}

func TestAppointmentUpdate_NotesOnlySkipsAvailabilityCheck(t *testing.T) {
	f := newAppointmentFixture()
	f.repo.appointments[5] = &domain.Appointment{
		ID:     5,
		Status: domain.AppointmentStatusScheduled,
	}

	err := f.svc.Update(context.Background(), 5, domain.UpdateAppointmentDTO{
		Notes: PointerTo("пациент предупредил об опоздании"),
	})

	require.NoError(t, err)
	assert.Zero(t, f.availability.calls)
}

func TestAppointmentUpdate_SlotTakenRace(t *testing.T) {
	f := newAppointmentFixture()
	f.repo.appointments[5] = &domain.Appointment{
		ID:                5,
		DentistID:         2,
		AppointmentTypeID: 3,
		AppointmentTime:   futureTime(),
		Status:            domain.AppointmentStatusScheduled,
	}
	f.repo.updateErr = domain.ErrSlotTaken

	newTime := futureTime().Add(time.Hour)
	err := f.svc.Update(context.Background(), 5, domain.UpdateAppointmentDTO{
		AppointmentTime: &newTime,
	})

	assert.ErrorIs(t, err, domain.ErrSlotTaken)
}

func TestAppointmentCancel_Idempotent(t *testing.T) {
	f := newAppointmentFixture()
	f.repo.appointments[5] = &domain.Appointment{
		ID:     5,
		Status: domain.AppointmentStatusCancelled,
	}

	err := f.svc.Cancel(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, f.repo.updated)
}

func TestAppointmentCancel_SetsCancelledStatus(t *testing.T) {
	f := newAppointmentFixture()
	f.repo.appointments[5] = &domain.Appointment{
		ID:     5,
		Status: domain.AppointmentStatusScheduled,
	}

	err := f.svc.Cancel(context.Background(), 5)

	require.NoError(t, err)
	dto, ok := f.repo.updated[5]
	require.True(t, ok)
	require.NotNil(t, dto.Status)
	assert.Equal(t, domain.AppointmentStatusCancelled, *dto.Status)
}

func TestAppointmentCheckIn_ScheduledOnly(t *testing.T) {
	f := newAppointmentFixture()
	f.repo.appointments[5] = &domain.Appointment{ID: 5, Status: domain.AppointmentStatusScheduled}
	f.repo.appointments[6] = &domain.Appointment{ID: 6, Status: domain.AppointmentStatusCancelled}

	require.NoError(t, f.svc.CheckIn(context.Background(), 5))
	assert.Contains(t, f.repo.checkedIn, int64(5))

	assert.Error(t, f.svc.CheckIn(context.Background(), 6))
	assert.NotContains(t, f.repo.checkedIn, int64(6))
}
