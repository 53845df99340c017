package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"isadental/internal/domain"
	"isadental/internal/repository"
)

type AppointmentServiceImpl struct {
	repo         repository.AppointmentRepository
	typeRepo     repository.AppointmentTypeRepository
	dentistRepo  repository.DentistRepository
	userRepo     repository.UserRepository
	availability AvailabilityService
	reminders    ReminderService
	logger       *zap.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	typeRepo repository.AppointmentTypeRepository,
	dentistRepo repository.DentistRepository,
	userRepo repository.UserRepository,
	availability AvailabilityService,
	reminders ReminderService,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:         repo,
		typeRepo:     typeRepo,
		dentistRepo:  dentistRepo,
		userRepo:     userRepo,
		availability: availability,
		reminders:    reminders,
		logger:       logger,
	}
}

func rejectionMessage(reason domain.RejectionReason) error {
	switch reason {
	case domain.ReasonClinicClosedWeekday:
		return errors.New("клиника не работает в этот день недели")
	case domain.ReasonClinicClosedDate:
		return errors.New("клиника закрыта в выбранную дату")
	case domain.ReasonOutsideOperatingHours:
		return errors.New("выбранное время вне часов работы клиники")
	case domain.ReasonDentistUnavailable:
		return errors.New("врач недоступен в выбранное время")
	case domain.ReasonDentistDoubleBooked:
		return errors.New("у врача уже есть запись на это время")
	default:
		return errors.New("выбранное время недоступно")
	}
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, userID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		s.logger.Error("пациент не найден при создании записи", zap.Int64("userID", userID), zap.Error(err))
		return 0, errors.New("пациент не найден")
	}

	dentist, err := s.dentistRepo.GetByID(ctx, dto.DentistID)
	if err != nil || dentist == nil {
		s.logger.Error("врач не найден при создании записи", zap.Int64("dentistID", dto.DentistID), zap.Error(err))
		return 0, errors.New("врач не найден")
	}

	appointmentType, err := s.typeRepo.GetByID(ctx, dto.AppointmentTypeID)
	if err != nil || appointmentType == nil {
		s.logger.Error("тип приема не найден", zap.Int64("typeID", dto.AppointmentTypeID), zap.Error(err))
		return 0, errors.New("тип приема не найден")
	}

	if !dto.AppointmentTime.After(time.Now()) {
		return 0, errors.New("время приема не может быть в прошлом")
	}

	verdict, err := s.availability.Evaluate(ctx, domain.EvaluateParams{
		DentistID:       dto.DentistID,
		StartTime:       dto.AppointmentTime,
		DurationMinutes: appointmentType.DurationOrDefault(),
	})
	if err != nil {
		s.logger.Error("ошибка проверки доступности", zap.Error(err))
		return 0, errors.New("ошибка при проверке доступности времени")
	}
	if !verdict.Accepted {
		s.logger.Info("кандидат на запись отклонен",
			zap.Int64("dentistID", dto.DentistID),
			zap.Time("time", dto.AppointmentTime),
			zap.String("reason", string(verdict.Reason)))
		return 0, rejectionMessage(verdict.Reason)
	}

	id, err := s.repo.Create(ctx, userID, dto)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			// Конкурентная запись успела занять слот после проверки.
			return 0, domain.ErrSlotTaken
		}
		s.logger.Error("ошибка создания записи", zap.Error(err))
		return 0, errors.New("ошибка при создании записи")
	}

	if err := s.reminders.CreateForAppointment(ctx, id, dto.AppointmentTime); err != nil {
		s.logger.Warn("не удалось создать напоминания для записи", zap.Int64("appointmentID", id), zap.Error(err))
	}

	return id, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения записи", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("запись не найдена")
	}
	if appointment == nil {
		return nil, errors.New("запись не найдена")
	}
	return appointment, nil
}

func (s *AppointmentServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil || appointment == nil {
		s.logger.Error("запись для обновления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("запись не найдена")
	}

	reschedule := dto.AppointmentTime != nil || dto.DentistID != nil || dto.AppointmentTypeID != nil

	if reschedule {
		dentistID := appointment.DentistID
		if dto.DentistID != nil {
			dentistID = *dto.DentistID
		}

		startTime := appointment.AppointmentTime
		if dto.AppointmentTime != nil {
			startTime = *dto.AppointmentTime
		}

		typeID := appointment.AppointmentTypeID
		if dto.AppointmentTypeID != nil {
			typeID = *dto.AppointmentTypeID
		}

		appointmentType, err := s.typeRepo.GetByID(ctx, typeID)
		if err != nil || appointmentType == nil {
			s.logger.Error("тип приема не найден при переносе", zap.Int64("typeID", typeID), zap.Error(err))
			return errors.New("тип приема не найден")
		}

		// Собственный ID исключается из проверки, иначе перенос в границах
		// прежнего слота конфликтовал бы сам с собой.
		verdict, err := s.availability.Evaluate(ctx, domain.EvaluateParams{
			DentistID:            dentistID,
			StartTime:            startTime,
			DurationMinutes:      appointmentType.DurationOrDefault(),
			ExcludeAppointmentID: &id,
		})
		if err != nil {
			s.logger.Error("ошибка проверки доступности при переносе", zap.Error(err))
			return errors.New("ошибка при проверке доступности времени")
		}
		if !verdict.Accepted {
			return rejectionMessage(verdict.Reason)
		}
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return domain.ErrSlotTaken
		}
		s.logger.Error("ошибка обновления записи", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении записи")
	}

	if dto.AppointmentTime != nil {
		if err := s.reminders.ResetForAppointment(ctx, id, *dto.AppointmentTime); err != nil {
			s.logger.Warn("не удалось пересоздать напоминания", zap.Int64("appointmentID", id), zap.Error(err))
		}
	}

	return nil
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id int64) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil || appointment == nil {
		s.logger.Error("запись для отмены не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("запись не найдена")
	}

	if appointment.Status == domain.AppointmentStatusCancelled {
		return nil
	}

	dto := domain.UpdateAppointmentDTO{
		Status: PointerTo(domain.AppointmentStatusCancelled),
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка отмены записи", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при отмене записи")
	}

	return nil
}

func (s *AppointmentServiceImpl) CheckIn(ctx context.Context, id int64) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil || appointment == nil {
		s.logger.Error("запись для отметки прихода не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("запись не найдена")
	}

	if appointment.Status != domain.AppointmentStatusScheduled {
		return errors.New("отметить приход можно только по запланированной записи")
	}

	err = s.repo.SetCheckedIn(ctx, id, true)
	if err != nil {
		s.logger.Error("ошибка отметки прихода", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при отметке прихода пациента")
	}

	return nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка записей")
	}

	count, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества записей", zap.Error(err))
		return appointments, 0, nil
	}

	return appointments, count, nil
}
