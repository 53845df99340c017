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

// Таймзона клиники в тестах фиксирована, чтобы не зависеть от базы tzdata.
var clinicLocation = time.FixedZone("ChST", 10*60*60)

// 2 марта 2026 — понедельник по календарю клиники.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, clinicLocation)
}

func newTestAvailability(
	appointments *fakeAppointmentRepo,
	calendar *fakeCalendarRepo,
	unavailability *fakeUnavailabilityRepo,
) *AvailabilityServiceImpl {
	return NewAvailabilityService(appointments, calendar, unavailability, clinicLocation, zap.NewNop())
}

func openMondayCalendar() *fakeCalendarRepo {
	calendar := newFakeCalendarRepo()
	calendar.openDay(1, "08:00", "17:00")
	return calendar
}

func TestAvailabilityEvaluate_AcceptsFreeSlot(t *testing.T) {
	svc := newTestAvailability(newFakeAppointmentRepo(), openMondayCalendar(), &fakeUnavailabilityRepo{})

	verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID:       1,
		StartTime:       mondayAt(10, 0),
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
	assert.Empty(t, verdict.Reason)
}

func TestAvailabilityEvaluate_RequiresStartTime(t *testing.T) {
	svc := newTestAvailability(newFakeAppointmentRepo(), openMondayCalendar(), &fakeUnavailabilityRepo{})

	_, err := svc.Evaluate(context.Background(), domain.EvaluateParams{DentistID: 1})

	assert.Error(t, err)
}

func TestAvailabilityEvaluate_ClosedWeekday(t *testing.T) {
	calendar := newFakeCalendarRepo()
	calendar.closedDayOfWeek(0)
	svc := newTestAvailability(newFakeAppointmentRepo(), calendar, &fakeUnavailabilityRepo{})

	sunday := time.Date(2026, 3, 1, 10, 0, 0, 0, clinicLocation)
	verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID: 1,
		StartTime: sunday,
	})

	require.NoError(t, err)
	assert.False(t, verdict.Accepted)
	assert.Equal(t, domain.ReasonClinicClosedWeekday, verdict.Reason)
}

func TestAvailabilityEvaluate_MissingDaySettingTreatedAsClosed(t *testing.T) {
	// Режим работы понедельника не настроен вовсе.
	svc := newTestAvailability(newFakeAppointmentRepo(), newFakeCalendarRepo(), &fakeUnavailabilityRepo{})

	verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID: 1,
		StartTime: mondayAt(10, 0),
	})

	require.NoError(t, err)
	assert.False(t, verdict.Accepted)
	assert.Equal(t, domain.ReasonClinicClosedWeekday, verdict.Reason)
}

func TestAvailabilityEvaluate_ClosedDate(t *testing.T) {
	calendar := openMondayCalendar()
	calendar.closedDays["2026-03-02"] = true
	svc := newTestAvailability(newFakeAppointmentRepo(), calendar, &fakeUnavailabilityRepo{})

	verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID: 1,
		StartTime: mondayAt(10, 0),
	})

	require.NoError(t, err)
	assert.False(t, verdict.Accepted)
	assert.Equal(t, domain.ReasonClinicClosedDate, verdict.Reason)
}

func TestAvailabilityEvaluate_WeekdayReasonWinsOverClosedDate(t *testing.T) {
	calendar := newFakeCalendarRepo()
	calendar.closedDayOfWeek(1)
	calendar.closedDays["2026-03-02"] = true
	svc := newTestAvailability(newFakeAppointmentRepo(), calendar, &fakeUnavailabilityRepo{})

	verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID: 1,
		StartTime: mondayAt(10, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReasonClinicClosedWeekday, verdict.Reason)
}

func TestAvailabilityEvaluate_OutsideOperatingHours(t *testing.T) {
	svc := newTestAvailability(newFakeAppointmentRepo(), openMondayCalendar(), &fakeUnavailabilityRepo{})

	cases := []struct {
		name     string
		start    time.Time
		duration int
		accepted bool
	}{
		{"до открытия", mondayAt(7, 30), 30, false},
		{"конец позже закрытия", mondayAt(16, 45), 30, false},
		{"ровно с открытия", mondayAt(8, 0), 30, true},
		{"конец ровно в закрытие", mondayAt(16, 30), 30, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
				DentistID:       1,
				StartTime:       tc.start,
				DurationMinutes: tc.duration,
			})

			require.NoError(t, err)
			assert.Equal(t, tc.accepted, verdict.Accepted)
			if !tc.accepted {
				assert.Equal(t, domain.ReasonOutsideOperatingHours, verdict.Reason)
			}
		})
	}
}

func TestAvailabilityEvaluate_DefaultDurationIsThirtyMinutes(t *testing.T) {
	svc := newTestAvailability(newFakeAppointmentRepo(), openMondayCalendar(), &fakeUnavailabilityRepo{})

	// 16:45 без явной длительности: конец 17:15 выходит за закрытие.
	verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID: 1,
		StartTime: mondayAt(16, 45),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonOutsideOperatingHours, verdict.Reason)

	// 16:30 без длительности укладывается ровно до закрытия.
	verdict, err = svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID: 1,
		StartTime: mondayAt(16, 30),
	})
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
}

func TestAvailabilityEvaluate_MalformedOpenTimeRejects(t *testing.T) {
	calendar := newFakeCalendarRepo()
	calendar.openDay(1, "8am", "17:00")
	svc := newTestAvailability(newFakeAppointmentRepo(), calendar, &fakeUnavailabilityRepo{})

	verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID: 1,
		StartTime: mondayAt(10, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReasonOutsideOperatingHours, verdict.Reason)
}

func TestAvailabilityEvaluate_DentistUnavailable(t *testing.T) {
	unavailability := &fakeUnavailabilityRepo{}
	_, err := unavailability.Create(context.Background(), domain.CreateUnavailabilityDTO{
		DentistID: 1,
		Date:      "2026-03-02",
		StartTime: "12:00",
		EndTime:   "13:00",
		Reason:    "обед",
	})
	require.NoError(t, err)

	svc := newTestAvailability(newFakeAppointmentRepo(), openMondayCalendar(), unavailability)

	// 12:30 попадает внутрь блокировки даже коротким приемом.
	verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID:       1,
		StartTime:       mondayAt(12, 30),
		DurationMinutes: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonDentistUnavailable, verdict.Reason)

	// Прием, заканчивающийся ровно к началу блокировки, допустим.
	verdict, err = svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID:       1,
		StartTime:       mondayAt(11, 30),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)

	// Блокировка другого врача не мешает.
	verdict, err = svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID:       2,
		StartTime:       mondayAt(12, 30),
		DurationMinutes: 15,
	})
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
}

func TestAvailabilityEvaluate_DoubleBooked(t *testing.T) {
	appointments := newFakeAppointmentRepo()
	appointments.intervals = []domain.BookedInterval{
		{AppointmentID: 7, StartTime: mondayAt(10, 0), Duration: 30},
	}
	svc := newTestAvailability(appointments, openMondayCalendar(), &fakeUnavailabilityRepo{})

	verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID:       1,
		StartTime:       mondayAt(10, 15),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonDentistDoubleBooked, verdict.Reason)

	// Запись встык к существующей не считается пересечением.
	verdict, err = svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID:       1,
		StartTime:       mondayAt(10, 30),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
}

func TestAvailabilityEvaluate_ExcludeOwnAppointmentOnReschedule(t *testing.T) {
	appointments := newFakeAppointmentRepo()
	appointments.intervals = []domain.BookedInterval{
		{AppointmentID: 7, StartTime: mondayAt(10, 0), Duration: 30},
	}
	svc := newTestAvailability(appointments, openMondayCalendar(), &fakeUnavailabilityRepo{})

	// Без исключения слот конфликтует сам с собой.
	verdict, err := svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID:       1,
		StartTime:       mondayAt(10, 0),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonDentistDoubleBooked, verdict.Reason)

	verdict, err = svc.Evaluate(context.Background(), domain.EvaluateParams{
		DentistID:            1,
		StartTime:            mondayAt(10, 0),
		DurationMinutes:      30,
		ExcludeAppointmentID: PointerTo(int64(7)),
	})
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
}

func TestAvailabilityEvaluate_Idempotent(t *testing.T) {
	appointments := newFakeAppointmentRepo()
	appointments.intervals = []domain.BookedInterval{
		{AppointmentID: 7, StartTime: mondayAt(10, 0), Duration: 30},
	}
	svc := newTestAvailability(appointments, openMondayCalendar(), &fakeUnavailabilityRepo{})

	// Решение считается заново при каждом вызове и при неизменном состоянии
	// совпадает с предыдущим.
	cases := []domain.EvaluateParams{
		{DentistID: 1, StartTime: mondayAt(9, 0), DurationMinutes: 30},
		{DentistID: 1, StartTime: mondayAt(10, 15), DurationMinutes: 30},
	}

	for _, params := range cases {
		first, err := svc.Evaluate(context.Background(), params)
		require.NoError(t, err)

		second, err := svc.Evaluate(context.Background(), params)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	}
}

func TestAvailabilityDayBookings_ClosedDaySkipsFetch(t *testing.T) {
	appointments := newFakeAppointmentRepo()
	calendar := newFakeCalendarRepo()
	calendar.closedDayOfWeek(0)
	svc := newTestAvailability(appointments, calendar, &fakeUnavailabilityRepo{})

	schedule, err := svc.DayBookings(context.Background(), 1, "2026-03-01", nil)

	require.NoError(t, err)
	assert.True(t, schedule.ClosedDay)
	assert.Empty(t, schedule.Appointments)
	assert.Zero(t, appointments.dayBookingCalls)
}

func TestAvailabilityDayBookings_ClosedDateSkipsFetch(t *testing.T) {
	appointments := newFakeAppointmentRepo()
	calendar := openMondayCalendar()
	calendar.closedDays["2026-03-02"] = true
	svc := newTestAvailability(appointments, calendar, &fakeUnavailabilityRepo{})

	schedule, err := svc.DayBookings(context.Background(), 1, "2026-03-02", nil)

	require.NoError(t, err)
	assert.True(t, schedule.ClosedDay)
	assert.Zero(t, appointments.dayBookingCalls)
}

func TestAvailabilityDayBookings_ReturnsBookings(t *testing.T) {
	appointments := newFakeAppointmentRepo()
	appointments.bookings = []domain.DayBooking{
		{ID: 1, AppointmentTime: mondayAt(9, 0), Duration: 30, Status: domain.AppointmentStatusScheduled},
		{ID: 2, AppointmentTime: mondayAt(10, 0), Duration: 60, Status: domain.AppointmentStatusScheduled},
	}
	svc := newTestAvailability(appointments, openMondayCalendar(), &fakeUnavailabilityRepo{})

	schedule, err := svc.DayBookings(context.Background(), 1, "2026-03-02", nil)

	require.NoError(t, err)
	assert.False(t, schedule.ClosedDay)
	assert.Len(t, schedule.Appointments, 2)
	assert.Equal(t, 1, appointments.dayBookingCalls)
}

func TestAvailabilityDayBookings_ExcludesAppointment(t *testing.T) {
	appointments := newFakeAppointmentRepo()
	appointments.bookings = []domain.DayBooking{
		{ID: 7, AppointmentTime: mondayAt(10, 0), Duration: 30, Status: domain.AppointmentStatusScheduled},
		{ID: 8, AppointmentTime: mondayAt(11, 0), Duration: 30, Status: domain.AppointmentStatusScheduled},
	}
	svc := newTestAvailability(appointments, openMondayCalendar(), &fakeUnavailabilityRepo{})

	// Переносимый прием скрыт из выборки, остальные остаются видны.
	schedule, err := svc.DayBookings(context.Background(), 1, "2026-03-02", PointerTo(int64(7)))

	require.NoError(t, err)
	require.Len(t, schedule.Appointments, 1)
	assert.Equal(t, int64(8), schedule.Appointments[0].ID)
}

func TestAvailabilityDayBookings_BadDateFormat(t *testing.T) {
	svc := newTestAvailability(newFakeAppointmentRepo(), openMondayCalendar(), &fakeUnavailabilityRepo{})

	_, err := svc.DayBookings(context.Background(), 1, "02.03.2026", nil)

	assert.Error(t, err)
}
