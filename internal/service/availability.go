package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"isadental/internal/domain"
	"isadental/internal/repository"
)

// overlapWindow — радиус выборки занятых интервалов вокруг кандидата.
// Прием не может длиться дольше суток, поэтому все потенциально
// пересекающиеся записи начинаются в этом окне.
const overlapWindow = 24 * time.Hour

type AvailabilityServiceImpl struct {
	appointmentRepo    repository.AppointmentRepository
	calendarRepo       repository.CalendarRepository
	unavailabilityRepo repository.UnavailabilityRepository
	location           *time.Location
	logger             *zap.Logger
}

func NewAvailabilityService(
	appointmentRepo repository.AppointmentRepository,
	calendarRepo repository.CalendarRepository,
	unavailabilityRepo repository.UnavailabilityRepository,
	location *time.Location,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		appointmentRepo:    appointmentRepo,
		calendarRepo:       calendarRepo,
		unavailabilityRepo: unavailabilityRepo,
		location:           location,
		logger:             logger,
	}
}

// parseClockOnDate превращает время вида "HH:MM" в момент на дате date
// в таймзоне клиники.
func parseClockOnDate(clock string, date time.Time, location *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректный формат времени %q: %w", clock, err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		location,
	), nil
}

// localDate — дата местного времени клиники как полночь UTC, в таком виде
// она сравнивается с колонками типа DATE.
func localDate(t time.Time, location *time.Location) time.Time {
	local := t.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Evaluate проверяет кандидата на запись. Проверки идут в фиксированном
// порядке, первая сработавшая дает причину отказа: выходной день недели,
// закрытая дата, выход за часы работы, блокировка врача, пересечение с
// другой записью. Решение нигде не кэшируется и каждый раз считается
// по текущему состоянию БД.
func (s *AvailabilityServiceImpl) Evaluate(ctx context.Context, params domain.EvaluateParams) (domain.Verdict, error) {
	if params.StartTime.IsZero() {
		return domain.Verdict{}, errors.New("не указано время начала приема")
	}

	duration := params.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultAppointmentDuration
	}

	start := params.StartTime.In(s.location)
	end := start.Add(time.Duration(duration) * time.Minute)

	setting, err := s.calendarRepo.GetDaySetting(ctx, int(start.Weekday()))
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("ошибка получения режима работы клиники: %w", err)
	}

	// Отсутствующая настройка дня недели трактуется как выходной.
	if setting == nil || !setting.IsOpen {
		return domain.VerdictRejected(domain.ReasonClinicClosedWeekday), nil
	}

	closed, err := s.calendarRepo.ClosedDayExists(ctx, localDate(start, s.location))
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("ошибка проверки выходной даты: %w", err)
	}
	if closed {
		return domain.VerdictRejected(domain.ReasonClinicClosedDate), nil
	}

	openAt, err := parseClockOnDate(setting.OpenTime, start, s.location)
	if err != nil {
		s.logger.Warn("некорректное время открытия в настройках дня",
			zap.Int("dayOfWeek", setting.DayOfWeek),
			zap.String("openTime", setting.OpenTime))
		return domain.VerdictRejected(domain.ReasonOutsideOperatingHours), nil
	}
	closeAt, err := parseClockOnDate(setting.CloseTime, start, s.location)
	if err != nil {
		s.logger.Warn("некорректное время закрытия в настройках дня",
			zap.Int("dayOfWeek", setting.DayOfWeek),
			zap.String("closeTime", setting.CloseTime))
		return domain.VerdictRejected(domain.ReasonOutsideOperatingHours), nil
	}

	// Границы включительно: прием ровно с открытия или до самого закрытия
	// допустим.
	if start.Before(openAt) || end.After(closeAt) {
		return domain.VerdictRejected(domain.ReasonOutsideOperatingHours), nil
	}

	unavailabilities, err := s.unavailabilityRepo.ListForDentistOnDate(ctx, params.DentistID, localDate(start, s.location))
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("ошибка получения блокировок врача: %w", err)
	}

	for _, u := range unavailabilities {
		blockStart, err := parseClockOnDate(u.StartTime, start, s.location)
		if err != nil {
			s.logger.Warn("некорректное начало блокировки врача",
				zap.Int64("unavailabilityID", u.ID),
				zap.String("startTime", u.StartTime))
			continue
		}
		blockEnd, err := parseClockOnDate(u.EndTime, start, s.location)
		if err != nil {
			s.logger.Warn("некорректный конец блокировки врача",
				zap.Int64("unavailabilityID", u.ID),
				zap.String("endTime", u.EndTime))
			continue
		}

		if domain.IntervalsOverlap(start, end, blockStart, blockEnd) {
			return domain.VerdictRejected(domain.ReasonDentistUnavailable), nil
		}
	}

	intervals, err := s.appointmentRepo.ScheduledIntervals(ctx, params.DentistID, start.Add(-overlapWindow), end, params.ExcludeAppointmentID)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("ошибка получения занятых интервалов врача: %w", err)
	}

	for _, interval := range intervals {
		if domain.IntervalsOverlap(start, end, interval.StartTime, interval.End()) {
			return domain.VerdictRejected(domain.ReasonDentistDoubleBooked), nil
		}
	}

	return domain.VerdictAccepted(), nil
}

// DayBookings возвращает занятость врача на дату. Если клиника в этот день
// не работает, ответ помечается closed_day и расписание не выбирается вовсе.
// excludeAppointmentID скрывает один прием из выборки, например переносимый.
func (s *AvailabilityServiceImpl) DayBookings(ctx context.Context, dentistID int64, date string, excludeAppointmentID *int64) (*domain.DaySchedule, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.location)
	if err != nil {
		return nil, errors.New("некорректный формат даты, ожидается YYYY-MM-DD")
	}

	schedule := &domain.DaySchedule{
		Date:      date,
		DentistID: dentistID,
	}

	setting, err := s.calendarRepo.GetDaySetting(ctx, int(day.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("ошибка получения режима работы клиники: %w", err)
	}

	closedDate := false
	if setting != nil && setting.IsOpen {
		closedDate, err = s.calendarRepo.ClosedDayExists(ctx, localDate(day, s.location))
		if err != nil {
			return nil, fmt.Errorf("ошибка проверки выходной даты: %w", err)
		}
	}

	if setting == nil || !setting.IsOpen || closedDate {
		schedule.ClosedDay = true
		return schedule, nil
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)

	bookings, err := s.appointmentRepo.DayBookings(ctx, dentistID, dayStart, dayEnd, excludeAppointmentID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписания врача: %w", err)
	}

	schedule.Appointments = bookings
	return schedule, nil
}
