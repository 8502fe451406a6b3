package services_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/reminder-planner/internal/models"
	services "github.com/magabrotheeeer/reminder-planner/internal/services/reminder"
	"github.com/magabrotheeeer/reminder-planner/internal/storage"
)

// Мок для ReminderRepository
type ReminderRepoMock struct {
	mock.Mock
}

func (m *ReminderRepoMock) CreateReminder(ctx context.Context, rem models.Reminder) (*models.Reminder, error) {
	args := m.Called(ctx, rem)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reminder), args.Error(1)
}

func (m *ReminderRepoMock) ReadReminder(ctx context.Context, id int, username string) (*models.Reminder, error) {
	args := m.Called(ctx, id, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reminder), args.Error(1)
}

func (m *ReminderRepoMock) UpdateReminder(ctx context.Context, rem models.Reminder) (*models.Reminder, error) {
	args := m.Called(ctx, rem)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reminder), args.Error(1)
}

func (m *ReminderRepoMock) RemoveReminder(ctx context.Context, id int, username string) (int, error) {
	args := m.Called(ctx, id, username)
	return args.Int(0), args.Error(1)
}

func (m *ReminderRepoMock) ListReminders(ctx context.Context, username string, limit, offset int) ([]*models.Reminder, error) {
	args := m.Called(ctx, username, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reminder), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestReminderService_Create(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummyReminder
		setupMocks func(r *ReminderRepoMock, c *CacheMock)
		wantFields []string
	}{
		{
			name: "owner and defaults are applied",
			req: models.DummyReminder{
				Date:    "2026-09-01",
				Time:    "09:30",
				Message: "call the dentist",
				Email:   "alice@example.com",
			},
			setupMocks: func(r *ReminderRepoMock, c *CacheMock) {
				r.On("CreateReminder", mock.Anything, mock.MatchedBy(func(rem models.Reminder) bool {
					return rem.Username == "alice" &&
						rem.Title == models.DefaultTitle &&
						rem.Method == models.MethodEmail &&
						rem.Email != nil && *rem.Email == "alice@example.com" &&
						rem.Time == "09:30"
				})).Return(&models.Reminder{ID: 7, Username: "alice"}, nil).Once()
				c.On("Set", "reminder:alice:7", mock.Anything, time.Hour).Return(nil).Once()
			},
		},
		{
			name: "sms method with phone number",
			req: models.DummyReminder{
				Date:        "2026-09-01",
				Time:        "09:30",
				Message:     "pick up parcel",
				Method:      models.MethodSMS,
				PhoneNumber: "+15551234567",
			},
			setupMocks: func(r *ReminderRepoMock, c *CacheMock) {
				r.On("CreateReminder", mock.Anything, mock.MatchedBy(func(rem models.Reminder) bool {
					return rem.Method == models.MethodSMS &&
						rem.PhoneNumber != nil && *rem.PhoneNumber == "+15551234567"
				})).Return(&models.Reminder{ID: 8, Username: "alice"}, nil).Once()
				c.On("Set", "reminder:alice:8", mock.Anything, time.Hour).Return(nil).Once()
			},
		},
		{
			name: "email method without email is rejected before storage",
			req: models.DummyReminder{
				Date:    "2026-09-01",
				Time:    "09:30",
				Message: "call the dentist",
			},
			setupMocks: func(_ *ReminderRepoMock, _ *CacheMock) {},
			wantFields: []string{"email"},
		},
		{
			name: "sms method without phone is rejected before storage",
			req: models.DummyReminder{
				Date:    "2026-09-01",
				Time:    "09:30",
				Message: "call the dentist",
				Method:  models.MethodSMS,
				Email:   "alice@example.com",
			},
			setupMocks: func(_ *ReminderRepoMock, _ *CacheMock) {},
			wantFields: []string{"phone_number"},
		},
		{
			name: "malformed date and time",
			req: models.DummyReminder{
				Date:    "01.09.2026",
				Time:    "9 am",
				Message: "call the dentist",
				Email:   "alice@example.com",
			},
			setupMocks: func(_ *ReminderRepoMock, _ *CacheMock) {},
			wantFields: []string{"date", "time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ReminderRepoMock)
			cache := new(CacheMock)
			svc := services.NewReminderService(repo, cache, discardLogger())

			tt.setupMocks(repo, cache)

			created, err := svc.Create(context.Background(), "alice", tt.req)
			if len(tt.wantFields) > 0 {
				var verr *services.ValidationError
				require.ErrorAs(t, err, &verr)
				for _, field := range tt.wantFields {
					assert.Contains(t, verr.Fields, field)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "alice", created.Username)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestReminderService_Read(t *testing.T) {
	t.Run("cache hit skips the repository", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		cache := new(CacheMock)
		svc := services.NewReminderService(repo, cache, discardLogger())

		cached := &models.Reminder{ID: 7, Username: "alice", Message: "from cache"}
		cache.On("Get", "reminder:alice:7", mock.Anything).
			Run(func(args mock.Arguments) {
				ptr := args.Get(1).(**models.Reminder)
				*ptr = cached
			}).Return(true, nil).Once()

		got, err := svc.Read(context.Background(), 7, "alice")
		require.NoError(t, err)
		assert.Equal(t, "from cache", got.Message)

		repo.AssertNotCalled(t, "ReadReminder")
		cache.AssertExpectations(t)
	})

	t.Run("cache miss falls through and stores", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		cache := new(CacheMock)
		svc := services.NewReminderService(repo, cache, discardLogger())

		stored := &models.Reminder{ID: 7, Username: "alice", Message: "from storage"}
		cache.On("Get", "reminder:alice:7", mock.Anything).Return(false, nil).Once()
		repo.On("ReadReminder", mock.Anything, 7, "alice").Return(stored, nil).Once()
		cache.On("Set", "reminder:alice:7", stored, time.Hour).Return(nil).Once()

		got, err := svc.Read(context.Background(), 7, "alice")
		require.NoError(t, err)
		assert.Equal(t, "from storage", got.Message)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("missing reminder", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		cache := new(CacheMock)
		svc := services.NewReminderService(repo, cache, discardLogger())

		cache.On("Get", "reminder:alice:99", mock.Anything).Return(false, nil).Once()
		repo.On("ReadReminder", mock.Anything, 99, "alice").
			Return(nil, storage.ErrReminderNotFound).Once()

		_, err := svc.Read(context.Background(), 99, "alice")
		require.ErrorIs(t, err, storage.ErrReminderNotFound)
	})
}

func TestReminderService_Update(t *testing.T) {
	existing := models.Reminder{
		ID:       7,
		Username: "alice",
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Time:     "09:30",
		Title:    models.DefaultTitle,
		Message:  "call the dentist",
		Method:   models.MethodEmail,
		Email:    strPtr("alice@example.com"),
	}

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		cache := new(CacheMock)
		svc := services.NewReminderService(repo, cache, discardLogger())

		current := existing
		repo.On("ReadReminder", mock.Anything, 7, "alice").Return(&current, nil).Once()
		repo.On("UpdateReminder", mock.Anything, mock.MatchedBy(func(rem models.Reminder) bool {
			return rem.Message == "call the dentist tomorrow" &&
				rem.Time == "09:30" &&
				rem.Method == models.MethodEmail
		})).Return(&models.Reminder{ID: 7, Username: "alice", Message: "call the dentist tomorrow"}, nil).Once()
		cache.On("Set", "reminder:alice:7", mock.Anything, time.Hour).Return(nil).Once()

		got, err := svc.Update(context.Background(), 7, "alice", models.DummyReminderUpdate{
			Message: strPtr("call the dentist tomorrow"),
		})
		require.NoError(t, err)
		assert.Equal(t, "call the dentist tomorrow", got.Message)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("switching to sms without a phone is rejected", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		cache := new(CacheMock)
		svc := services.NewReminderService(repo, cache, discardLogger())

		current := existing
		repo.On("ReadReminder", mock.Anything, 7, "alice").Return(&current, nil).Once()

		_, err := svc.Update(context.Background(), 7, "alice", models.DummyReminderUpdate{
			Method: strPtr(models.MethodSMS),
		})

		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "phone_number")
		repo.AssertNotCalled(t, "UpdateReminder")
	})

	t.Run("missing reminder is reported before validation", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		cache := new(CacheMock)
		svc := services.NewReminderService(repo, cache, discardLogger())

		repo.On("ReadReminder", mock.Anything, 99, "alice").
			Return(nil, storage.ErrReminderNotFound).Once()

		_, err := svc.Update(context.Background(), 99, "alice", models.DummyReminderUpdate{
			Date: strPtr("not-a-date"),
		})
		require.ErrorIs(t, err, storage.ErrReminderNotFound)
	})
}

func TestReminderService_Remove(t *testing.T) {
	t.Run("removes and invalidates cache", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		cache := new(CacheMock)
		svc := services.NewReminderService(repo, cache, discardLogger())

		cache.On("Invalidate", "reminder:alice:7").Return(nil).Once()
		repo.On("RemoveReminder", mock.Anything, 7, "alice").Return(1, nil).Once()

		count, err := svc.Remove(context.Background(), 7, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("zero rows for a missing reminder", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		cache := new(CacheMock)
		svc := services.NewReminderService(repo, cache, discardLogger())

		cache.On("Invalidate", "reminder:alice:99").Return(nil).Once()
		repo.On("RemoveReminder", mock.Anything, 99, "alice").Return(0, nil).Once()

		count, err := svc.Remove(context.Background(), 99, "alice")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("storage error", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		cache := new(CacheMock)
		svc := services.NewReminderService(repo, cache, discardLogger())

		cache.On("Invalidate", "reminder:alice:7").Return(nil).Once()
		repo.On("RemoveReminder", mock.Anything, 7, "alice").
			Return(0, errors.New("connection lost")).Once()

		_, err := svc.Remove(context.Background(), 7, "alice")
		require.Error(t, err)
	})
}
