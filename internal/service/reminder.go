package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"isadental/internal/domain"
	"isadental/internal/repository"
)

// reminderHour — час отправки напоминания в день приема по местному
// времени клиники.
const reminderHour = 8

// ReminderSender доставляет одно напоминание пациенту. Реализация с
// реальным каналом доставки (SMS, email) подключается на старте приложения.
type ReminderSender interface {
	Send(ctx context.Context, reminder domain.AppointmentReminder) error
}

// LogSender пишет напоминание в журнал вместо реальной отправки.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, reminder domain.AppointmentReminder) error {
	s.logger.Info("отправка напоминания о приеме",
		zap.Int64("reminderID", reminder.ID),
		zap.Int64("appointmentID", reminder.AppointmentID),
		zap.Time("sendAt", reminder.SendAt))
	return nil
}

type ReminderServiceImpl struct {
	repo     repository.ReminderRepository
	sender   ReminderSender
	location *time.Location
	logger   *zap.Logger
}

func NewReminderService(repo repository.ReminderRepository, location *time.Location, logger *zap.Logger) *ReminderServiceImpl {
	return &ReminderServiceImpl{
		repo:     repo,
		sender:   NewLogSender(logger),
		location: location,
		logger:   logger,
	}
}

// SetSender заменяет канал доставки напоминаний.
func (s *ReminderServiceImpl) SetSender(sender ReminderSender) {
	s.sender = sender
}

// DeriveSendTimes считает моменты отправки двух напоминаний: в 08:00
// местного времени в день приема и ровно за сутки до этого. Оба момента
// возвращаются в UTC, в таком виде они и хранятся.
func (s *ReminderServiceImpl) DeriveSendTimes(appointmentTime time.Time) (dayBefore, dayOf time.Time) {
	local := appointmentTime.In(s.location)
	dayOf = time.Date(local.Year(), local.Month(), local.Day(), reminderHour, 0, 0, 0, s.location).UTC()
	dayBefore = dayOf.Add(-24 * time.Hour)
	return dayBefore, dayOf
}

func (s *ReminderServiceImpl) CreateForAppointment(ctx context.Context, appointmentID int64, appointmentTime time.Time) error {
	dayBefore, dayOf := s.DeriveSendTimes(appointmentTime)

	for _, sendAt := range []time.Time{dayBefore, dayOf} {
		if _, err := s.repo.Create(ctx, appointmentID, sendAt); err != nil {
			s.logger.Error("ошибка создания напоминания",
				zap.Int64("appointmentID", appointmentID),
				zap.Time("sendAt", sendAt),
				zap.Error(err))
			return errors.New("ошибка при создании напоминаний")
		}
	}

	return nil
}

// ResetForAppointment пересоздает напоминания после переноса приема.
func (s *ReminderServiceImpl) ResetForAppointment(ctx context.Context, appointmentID int64, appointmentTime time.Time) error {
	if err := s.repo.DeleteByAppointmentID(ctx, appointmentID); err != nil {
		s.logger.Error("ошибка удаления старых напоминаний", zap.Int64("appointmentID", appointmentID), zap.Error(err))
		return errors.New("ошибка при пересоздании напоминаний")
	}

	return s.CreateForAppointment(ctx, appointmentID, appointmentTime)
}

func (s *ReminderServiceImpl) List(ctx context.Context, filter domain.ReminderFilter) ([]domain.AppointmentReminder, int, error) {
	reminders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка напоминаний", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка напоминаний")
	}

	return reminders, total, nil
}

func (s *ReminderServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateReminderDTO) error {
	reminder, err := s.repo.GetByID(ctx, id)
	if err != nil || reminder == nil {
		s.logger.Error("напоминание не найдено", zap.Int64("id", id), zap.Error(err))
		return errors.New("напоминание не найдено")
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления напоминания", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении напоминания")
	}

	return nil
}

// DispatchDue отправляет все назревшие напоминания по живым записям.
// Ошибка доставки одного напоминания не останавливает остальные.
func (s *ReminderServiceImpl) DispatchDue(ctx context.Context, now time.Time) error {
	due, err := s.repo.ListDue(ctx, now)
	if err != nil {
		s.logger.Error("ошибка получения напоминаний к отправке", zap.Error(err))
		return err
	}

	for _, reminder := range due {
		if err := s.sender.Send(ctx, reminder); err != nil {
			s.logger.Error("ошибка отправки напоминания",
				zap.Int64("reminderID", reminder.ID),
				zap.Error(err))
			continue
		}

		if err := s.repo.MarkSent(ctx, reminder.ID, now); err != nil {
			s.logger.Error("ошибка отметки напоминания отправленным",
				zap.Int64("reminderID", reminder.ID),
				zap.Error(err))
		}
	}

	return nil
}

// RunDispatcher крутит цикл отправки напоминаний до отмены контекста.
func (s *ReminderServiceImpl) RunDispatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("диспетчер напоминаний запущен", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("диспетчер напоминаний остановлен")
			return
		case now := <-ticker.C:
			if err := s.DispatchDue(ctx, now.UTC()); err != nil {
				s.logger.Error("цикл отправки напоминаний завершился с ошибкой", zap.Error(err))
			}
		}
	}
}
