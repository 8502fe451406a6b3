// Package services содержит бизнес-логику для работы с профилем пользователя.
package services

import (
	"context"

	"github.com/magabrotheeeer/reminder-planner/internal/models"
)

// ProfileRepository определяет методы для работы с пользователями в хранилище.
type ProfileRepository interface {
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// UpdateUserProfile применяет частичное обновление профиля.
	UpdateUserProfile(ctx context.Context, username string, upd models.DummyProfileUpdate) (*models.User, error)
	// DeleteUser удаляет пользователя вместе с его напоминаниями в одной транзакции.
	DeleteUser(ctx context.Context, username string) error
}

// UserService реализует операции над профилем аутентифицированного пользователя.
// Каждый метод работает только с записью вызывающего: имя пользователя
// приходит из токена, а не из запроса.
type UserService struct {
	repo ProfileRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo ProfileRepository) *UserService {
	return &UserService{repo: repo}
}

// Get возвращает профиль вызывающего пользователя.
func (s *UserService) Get(ctx context.Context, username string) (*models.Profile, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile := user.ToProfile()
	return &profile, nil
}

// Update применяет частичное обновление профиля: непереданные поля
// сохраняют прежние значения. Пароль этим методом не изменяется.
func (s *UserService) Update(ctx context.Context, username string, upd models.DummyProfileUpdate) (*models.Profile, error) {
	user, err := s.repo.UpdateUserProfile(ctx, username, upd)
	if err != nil {
		return nil, err
	}
	profile := user.ToProfile()
	return &profile, nil
}

// Delete удаляет учётную запись вызывающего вместе со всеми его напоминаниями.
func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.repo.DeleteUser(ctx, username)
}
