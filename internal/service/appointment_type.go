package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"isadental/internal/domain"
	"isadental/internal/repository"
)

type AppointmentTypeServiceImpl struct {
	repo   repository.AppointmentTypeRepository
	logger *zap.Logger
}

func NewAppointmentTypeService(repo repository.AppointmentTypeRepository, logger *zap.Logger) *AppointmentTypeServiceImpl {
	return &AppointmentTypeServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *AppointmentTypeServiceImpl) Create(ctx context.Context, dto domain.CreateAppointmentTypeDTO) (int64, error) {
	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания типа приема", zap.Error(err))
		return 0, errors.New("ошибка при создании типа приема")
	}

	return id, nil
}

func (s *AppointmentTypeServiceImpl) GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error) {
	appointmentType, err := s.repo.GetByID(ctx, id)
	if err != nil || appointmentType == nil {
		s.logger.Error("тип приема не найден", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("тип приема не найден")
	}
	return appointmentType, nil
}

func (s *AppointmentTypeServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentTypeDTO) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("тип приема для обновления не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("тип приема не найден")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления типа приема", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении типа приема")
	}

	return nil
}

func (s *AppointmentTypeServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления типа приема", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении типа приема")
	}

	return nil
}

func (s *AppointmentTypeServiceImpl) List(ctx context.Context) ([]domain.AppointmentType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка типов приема", zap.Error(err))
		return nil, errors.New("ошибка при получении списка типов приема")
	}

	return types, nil
}
