package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"isadental/internal/domain"
	"isadental/internal/repository"
	"isadental/internal/storage"
)

type DentistServiceImpl struct {
	repo          repository.DentistRepository
	specialtyRepo repository.SpecialtyRepository
	fileStorage   storage.FileStorage
	logger        *zap.Logger
}

func NewDentistService(
	repo repository.DentistRepository,
	specialtyRepo repository.SpecialtyRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *DentistServiceImpl {
	return &DentistServiceImpl{
		repo:          repo,
		specialtyRepo: specialtyRepo,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

func (s *DentistServiceImpl) Create(ctx context.Context, dto domain.CreateDentistDTO) (int64, error) {
	if dto.SpecialtyID != nil {
		specialty, err := s.specialtyRepo.GetByID(ctx, *dto.SpecialtyID)
		if err != nil || specialty == nil {
			s.logger.Error("специальность не найдена", zap.Int64p("specialtyID", dto.SpecialtyID), zap.Error(err))
			return 0, errors.New("специальность не найдена")
		}
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания врача", zap.Error(err))
		return 0, errors.New("ошибка при создании врача")
	}

	return id, nil
}

func (s *DentistServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Dentist, error) {
	dentist, err := s.repo.GetByID(ctx, id)
	if err != nil || dentist == nil {
		s.logger.Error("врач не найден", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("врач не найден")
	}
	return dentist, nil
}

func (s *DentistServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateDentistDTO) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("врач для обновления не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("врач не найден")
	}

	if dto.SpecialtyID != nil {
		specialty, err := s.specialtyRepo.GetByID(ctx, *dto.SpecialtyID)
		if err != nil || specialty == nil {
			return errors.New("специальность не найдена")
		}
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления врача", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении врача")
	}

	return nil
}

func (s *DentistServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления врача", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении врача")
	}

	return nil
}

func (s *DentistServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.Dentist, int, error) {
	dentists, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ошибка получения списка врачей", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка врачей")
	}

	return dentists, total, nil
}

func (s *DentistServiceImpl) UploadImage(ctx context.Context, dentistID int64, image []byte, filename string) (string, error) {
	dentist, err := s.repo.GetByID(ctx, dentistID)
	if err != nil || dentist == nil {
		s.logger.Error("врач не найден при загрузке фото", zap.Int64("id", dentistID), zap.Error(err))
		return "", errors.New("врач не найден")
	}

	if dentist.ImageURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, dentist.ImageURL); err != nil {
			s.logger.Warn("не удалось удалить старое фото врача", zap.Int64("id", dentistID), zap.Error(err))
		}
	}

	imageURL, err := s.fileStorage.UploadFile(ctx, image, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото врача", zap.Int64("id", dentistID), zap.Error(err))
		return "", errors.New("ошибка при загрузке фото")
	}

	err = s.repo.UpdateImageURL(ctx, dentistID, imageURL)
	if err != nil {
		s.logger.Error("ошибка сохранения ссылки на фото", zap.Int64("id", dentistID), zap.Error(err))
		return "", errors.New("ошибка при сохранении фото")
	}

	return imageURL, nil
}
