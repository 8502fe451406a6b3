// Package services содержит логику бизнес-уровня для регистрации,
// аутентификации и работы с парой access/refresh токенов.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/reminder-planner/internal/lib/jwt"
	"github.com/magabrotheeeer/reminder-planner/internal/lib/password"
	"github.com/magabrotheeeer/reminder-planner/internal/models"
	"github.com/magabrotheeeer/reminder-planner/internal/storage"
)

// Ошибки бизнес-уровня, по которым обработчики выбирают HTTP-статус.
var (
	// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
	// Несуществующий пользователь и неверный пароль неразличимы.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserDisabled возвращается при верных учётных данных отключённой записи.
	ErrUserDisabled = errors.New("user account is disabled")
	// ErrInvalidToken возвращается для невалидного, истёкшего или отозванного токена.
	ErrInvalidToken = errors.New("invalid token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenStore описывает хранилище выданных refresh-токенов.
type TokenStore interface {
	StoreRefreshToken(ctx context.Context, tokenID, username string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (string, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenPair — пара токенов, выдаваемая при входе и при ротации.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService отвечает за регистрацию, авторизацию и выпуск JWT.
type AuthService struct {
	users      UserRepository
	tokens     TokenStore
	jwtMaker   jwt.Maker
	refreshTTL time.Duration
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, tokens TokenStore, jwtMaker jwt.Maker, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtMaker:   jwtMaker,
		refreshTTL: refreshTTL,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и возвращает его публичный профиль. Коллизия имени пользователя
// доходит до обработчика как storage.ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string, age *int, bio *string) (*models.Profile, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Age:          age,
		Bio:          bio,
		IsActive:     true,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.UID = uid
	profile := user.ToProfile()
	return &profile, nil
}

// Login проверяет пароль пользователя и выдаёт пару access/refresh токенов.
// Для отключённой учётной записи с верным паролем возвращает ErrUserDisabled.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*TokenPair, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	return s.issuePair(ctx, user.Username)
}

// Refresh проверяет refresh-токен, отзывает его и выдаёт новую пару.
// Токен одноразовый: повторное предъявление отклоняется. Состояние
// учётной записи перепроверяется: отключённый или удалённый пользователь
// ротацию не проходит.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtMaker.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.TokenTypeRefresh || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	username, err := s.tokens.GetRefreshToken(ctx, claims.ID)
	if err != nil || username != claims.Username {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	if err := s.tokens.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	return s.issuePair(ctx, claims.Username)
}

// ValidateToken проверяет access-токен и возвращает имя пользователя.
func (s *AuthService) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

func (s *AuthService) issuePair(ctx context.Context, username string) (*TokenPair, error) {
	access, err := s.jwtMaker.GenerateAccessToken(username)
	if err != nil {
		return nil, err
	}
	tokenID, refresh, err := s.jwtMaker.GenerateRefreshToken(username)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.StoreRefreshToken(ctx, tokenID, username, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
