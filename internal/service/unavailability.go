package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"isadental/internal/domain"
	"isadental/internal/repository"
)

type UnavailabilityServiceImpl struct {
	repo        repository.UnavailabilityRepository
	dentistRepo repository.DentistRepository
	logger      *zap.Logger
}

func NewUnavailabilityService(
	repo repository.UnavailabilityRepository,
	dentistRepo repository.DentistRepository,
	logger *zap.Logger,
) *UnavailabilityServiceImpl {
	return &UnavailabilityServiceImpl{
		repo:        repo,
		dentistRepo: dentistRepo,
		logger:      logger,
	}
}

func (s *UnavailabilityServiceImpl) Create(ctx context.Context, dto domain.CreateUnavailabilityDTO) (int64, error) {
	dentist, err := s.dentistRepo.GetByID(ctx, dto.DentistID)
	if err != nil || dentist == nil {
		s.logger.Error("врач не найден при создании блокировки", zap.Int64("dentistID", dto.DentistID), zap.Error(err))
		return 0, errors.New("врач не найден")
	}

	if _, err := time.Parse("2006-01-02", dto.Date); err != nil {
		return 0, errors.New("некорректный формат даты, ожидается YYYY-MM-DD")
	}
	if !validClock(dto.StartTime) || !validClock(dto.EndTime) {
		return 0, errors.New("некорректный формат времени, ожидается HH:MM")
	}
	if dto.StartTime >= dto.EndTime {
		return 0, errors.New("начало блокировки должно быть раньше ее конца")
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания блокировки врача", zap.Error(err))
		return 0, errors.New("ошибка при создании блокировки")
	}

	return id, nil
}

func (s *UnavailabilityServiceImpl) GetByID(ctx context.Context, id int64) (*domain.DentistUnavailability, error) {
	unavailability, err := s.repo.GetByID(ctx, id)
	if err != nil || unavailability == nil {
		s.logger.Error("блокировка не найдена", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("блокировка не найдена")
	}
	return unavailability, nil
}

func (s *UnavailabilityServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateUnavailabilityDTO) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil || existing == nil {
		s.logger.Error("блокировка для обновления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("блокировка не найдена")
	}

	if dto.Date != nil {
		if _, err := time.Parse("2006-01-02", *dto.Date); err != nil {
			return errors.New("некорректный формат даты, ожидается YYYY-MM-DD")
		}
	}

	startTime := existing.StartTime
	if dto.StartTime != nil {
		if !validClock(*dto.StartTime) {
			return errors.New("некорректный формат времени, ожидается HH:MM")
		}
		startTime = *dto.StartTime
	}
	endTime := existing.EndTime
	if dto.EndTime != nil {
		if !validClock(*dto.EndTime) {
			return errors.New("некорректный формат времени, ожидается HH:MM")
		}
		endTime = *dto.EndTime
	}
	if startTime >= endTime {
		return errors.New("начало блокировки должно быть раньше ее конца")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления блокировки", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении блокировки")
	}

	return nil
}

func (s *UnavailabilityServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления блокировки", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении блокировки")
	}

	return nil
}

func (s *UnavailabilityServiceImpl) List(ctx context.Context, filter domain.UnavailabilityFilter) ([]domain.DentistUnavailability, error) {
	unavailabilities, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка блокировок", zap.Error(err))
		return nil, errors.New("ошибка при получении списка блокировок")
	}

	return unavailabilities, nil
}
