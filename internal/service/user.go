package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"isadental/internal/domain"
	"isadental/internal/repository"
	"isadental/pkg/validator"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserServiceImpl) Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error) {
	if !validator.ValidatePhone(dto.Phone) {
		return 0, errors.New("некорректный номер телефона")
	}
	dto.Phone = validator.FormatPhone(dto.Phone)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return 0, errors.New("ошибка при создании пользователя")
	}
	dto.Password = string(hashedPassword)

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания пользователя", zap.Error(err))
		return 0, errors.New("ошибка при создании пользователя")
	}

	return id, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil || user == nil {
		s.logger.Error("пользователь не найден", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("пользователь не найден")
	}
	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("пользователь для обновления не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("пользователь не найден")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления пользователя", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении пользователя")
	}

	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil || user == nil {
		s.logger.Error("пользователь не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("пользователь не найден")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.OldPassword))
	if err != nil {
		return errors.New("неверный текущий пароль")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return errors.New("ошибка при обновлении пароля")
	}

	err = s.repo.UpdatePassword(ctx, id, string(hashedPassword))
	if err != nil {
		s.logger.Error("ошибка обновления пароля", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении пароля")
	}

	return nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления пользователя", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении пользователя")
	}

	return nil
}

func (s *UserServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ошибка получения списка пользователей", zap.Error(err))
		return nil, errors.New("ошибка при получении списка пользователей")
	}

	return users, nil
}

// CreateChild заводит детский профиль, привязанный к аккаунту родителя.
// Такой профиль не имеет своих учетных данных и записывается на прием
// родителем.
func (s *UserServiceImpl) CreateChild(ctx context.Context, parentID int64, dto domain.CreateChildDTO) (int64, error) {
	parent, err := s.repo.GetByID(ctx, parentID)
	if err != nil || parent == nil {
		s.logger.Error("родитель не найден", zap.Int64("parentID", parentID), zap.Error(err))
		return 0, errors.New("родительский аккаунт не найден")
	}

	if parent.IsChild() {
		return 0, errors.New("детский профиль не может иметь своих детских профилей")
	}

	createDTO := domain.CreateUserDTO{
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		Role:        domain.UserRolePatient,
		ParentID:    &parentID,
		DateOfBirth: dto.DateOfBirth,
	}

	id, err := s.repo.Create(ctx, createDTO)
	if err != nil {
		s.logger.Error("ошибка создания детского профиля", zap.Int64("parentID", parentID), zap.Error(err))
		return 0, errors.New("ошибка при создании детского профиля")
	}

	return id, nil
}

func (s *UserServiceImpl) UpdateChild(ctx context.Context, parentID, childID int64, dto domain.UpdateChildDTO) error {
	child, err := s.repo.GetByID(ctx, childID)
	if err != nil || child == nil {
		s.logger.Error("детский профиль не найден", zap.Int64("childID", childID), zap.Error(err))
		return errors.New("детский профиль не найден")
	}

	if child.ParentID == nil || *child.ParentID != parentID {
		return errors.New("детский профиль принадлежит другому аккаунту")
	}

	updateDTO := domain.UpdateUserDTO{
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		DateOfBirth: dto.DateOfBirth,
	}

	err = s.repo.Update(ctx, childID, updateDTO)
	if err != nil {
		s.logger.Error("ошибка обновления детского профиля", zap.Int64("childID", childID), zap.Error(err))
		return errors.New("ошибка при обновлении детского профиля")
	}

	return nil
}

func (s *UserServiceImpl) ListChildren(ctx context.Context, parentID *int64) ([]domain.User, error) {
	children, err := s.repo.ListChildren(ctx, parentID)
	if err != nil {
		s.logger.Error("ошибка получения детских профилей", zap.Error(err))
		return nil, errors.New("ошибка при получении детских профилей")
	}

	return children, nil
}
