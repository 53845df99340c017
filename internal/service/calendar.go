package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"isadental/internal/domain"
	"isadental/internal/repository"
)

type CalendarServiceImpl struct {
	repo   repository.CalendarRepository
	logger *zap.Logger
}

func NewCalendarService(repo repository.CalendarRepository, logger *zap.Logger) *CalendarServiceImpl {
	return &CalendarServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func validClock(clock string) bool {
	_, err := time.Parse("15:04", clock)
	return err == nil
}

func (s *CalendarServiceImpl) ListDaySettings(ctx context.Context) ([]domain.ClinicDaySetting, error) {
	settings, err := s.repo.ListDaySettings(ctx)
	if err != nil {
		s.logger.Error("ошибка получения режима работы клиники", zap.Error(err))
		return nil, errors.New("ошибка при получении режима работы клиники")
	}

	return settings, nil
}

func (s *CalendarServiceImpl) UpdateDaySetting(ctx context.Context, id int64, dto domain.UpdateClinicDaySettingDTO) error {
	if dto.OpenTime != nil && !validClock(*dto.OpenTime) {
		return errors.New("некорректный формат времени открытия, ожидается HH:MM")
	}
	if dto.CloseTime != nil && !validClock(*dto.CloseTime) {
		return errors.New("некорректный формат времени закрытия, ожидается HH:MM")
	}
	if dto.OpenTime != nil && dto.CloseTime != nil && *dto.OpenTime >= *dto.CloseTime {
		return errors.New("время открытия должно быть раньше времени закрытия")
	}

	err := s.repo.UpdateDaySetting(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления режима работы", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении режима работы")
	}

	return nil
}

func (s *CalendarServiceImpl) ListClosedDays(ctx context.Context) ([]domain.ClosedDay, error) {
	days, err := s.repo.ListClosedDays(ctx)
	if err != nil {
		s.logger.Error("ошибка получения выходных дат", zap.Error(err))
		return nil, errors.New("ошибка при получении выходных дат")
	}

	return days, nil
}

func (s *CalendarServiceImpl) CreateClosedDay(ctx context.Context, dto domain.CreateClosedDayDTO) (int64, error) {
	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		return 0, errors.New("некорректный формат даты, ожидается YYYY-MM-DD")
	}

	exists, err := s.repo.ClosedDayExists(ctx, date)
	if err != nil {
		s.logger.Error("ошибка проверки выходной даты", zap.Error(err))
		return 0, errors.New("ошибка при добавлении выходной даты")
	}
	if exists {
		return 0, errors.New("эта дата уже отмечена выходной")
	}

	id, err := s.repo.CreateClosedDay(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка добавления выходной даты", zap.Error(err))
		return 0, errors.New("ошибка при добавлении выходной даты")
	}

	return id, nil
}

func (s *CalendarServiceImpl) DeleteClosedDay(ctx context.Context, id int64) error {
	err := s.repo.DeleteClosedDay(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления выходной даты", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении выходной даты")
	}

	return nil
}
