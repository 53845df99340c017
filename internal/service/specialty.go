package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"isadental/internal/domain"
	"isadental/internal/repository"
)

type SpecialtyServiceImpl struct {
	repo   repository.SpecialtyRepository
	logger *zap.Logger
}

func NewSpecialtyService(repo repository.SpecialtyRepository, logger *zap.Logger) *SpecialtyServiceImpl {
	return &SpecialtyServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *SpecialtyServiceImpl) Create(ctx context.Context, dto domain.CreateSpecialtyDTO) (int64, error) {
	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания специальности", zap.Error(err))
		return 0, errors.New("ошибка при создании специальности")
	}

	return id, nil
}

func (s *SpecialtyServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Specialty, error) {
	specialty, err := s.repo.GetByID(ctx, id)
	if err != nil || specialty == nil {
		s.logger.Error("специальность не найдена", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("специальность не найдена")
	}
	return specialty, nil
}

func (s *SpecialtyServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateSpecialtyDTO) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("специальность для обновления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("специальность не найдена")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления специальности", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении специальности")
	}

	return nil
}

func (s *SpecialtyServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления специальности", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении специальности")
	}

	return nil
}

func (s *SpecialtyServiceImpl) List(ctx context.Context) ([]domain.Specialty, error) {
	specialties, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка специальностей", zap.Error(err))
		return nil, errors.New("ошибка при получении списка специальностей")
	}

	return specialties, nil
}
