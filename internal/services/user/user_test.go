package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/reminder-planner/internal/models"
	services "github.com/magabrotheeeer/reminder-planner/internal/services/user"
	"github.com/magabrotheeeer/reminder-planner/internal/storage"
)

// Мок для ProfileRepository
type ProfileRepoMock struct {
	mock.Mock
}

func (m *ProfileRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *ProfileRepoMock) UpdateUserProfile(ctx context.Context, username string, upd models.DummyProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, username, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *ProfileRepoMock) DeleteUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func TestUserService_Get(t *testing.T) {
	repo := new(ProfileRepoMock)
	svc := services.NewUserService(repo)

	repo.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
		UID:          "uid-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashedpassword",
		IsActive:     true,
	}, nil).Once()

	profile, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)

	repo.AssertExpectations(t)
}

func TestUserService_Update(t *testing.T) {
	repo := new(ProfileRepoMock)
	svc := services.NewUserService(repo)

	email := "new@example.com"
	upd := models.DummyProfileUpdate{Email: &email}
	repo.On("UpdateUserProfile", mock.Anything, "alice", upd).Return(&models.User{
		UID:      "uid-1",
		Username: "alice",
		Email:    email,
	}, nil).Once()

	profile, err := svc.Update(context.Background(), "alice", upd)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.Email)

	repo.AssertExpectations(t)
}

func TestUserService_Delete(t *testing.T) {
	repo := new(ProfileRepoMock)
	svc := services.NewUserService(repo)

	t.Run("successful delete", func(t *testing.T) {
		repo.On("DeleteUser", mock.Anything, "alice").Return(nil).Once()
		require.NoError(t, svc.Delete(context.Background(), "alice"))
	})

	t.Run("missing user", func(t *testing.T) {
		repo.On("DeleteUser", mock.Anything, "ghost").Return(storage.ErrUserNotFound).Once()
		require.ErrorIs(t, svc.Delete(context.Background(), "ghost"), storage.ErrUserNotFound)
	})

	repo.AssertExpectations(t)
}
