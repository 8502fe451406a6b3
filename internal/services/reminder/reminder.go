// Package services содержит бизнес-логику для управления напоминаниями:
// владелец всегда берётся из токена, чтение/изменение/удаление ограничены
// владельцем, кросс-полевое правило доставки проверяется до записи в базу.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/reminder-planner/internal/models"
)

// Форматы даты и времени, принимаемые в JSON-запросах.
const (
	DateLayout = models.DateLayout
	TimeLayout = "15:04"
)

// ValidationError несёт ошибки по конкретным полям запроса.
// Запись в хранилище при такой ошибке не выполняется.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// ReminderRepository определяет методы для работы с напоминаниями в хранилище.
type ReminderRepository interface {
	// CreateReminder добавляет новое напоминание и возвращает запись с id и метками времени.
	CreateReminder(ctx context.Context, rem models.Reminder) (*models.Reminder, error)
	// ReadReminder возвращает напоминание по ID в пределах владельца.
	ReadReminder(ctx context.Context, id int, username string) (*models.Reminder, error)
	// UpdateReminder перезаписывает напоминание слитыми значениями.
	UpdateReminder(ctx context.Context, rem models.Reminder) (*models.Reminder, error)
	// RemoveReminder удаляет напоминание владельца, возвращает число удалённых строк.
	RemoveReminder(ctx context.Context, id int, username string) (int, error)
	// ListReminders возвращает напоминания пользователя с пагинацией.
	ListReminders(ctx context.Context, username string, limit, offset int) ([]*models.Reminder, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ReminderService реализует бизнес-логику работы с напоминаниями, включая кеширование.
type ReminderService struct {
	repo  ReminderRepository
	cache Cache
	log   *slog.Logger
}

// NewReminderService создает новый экземпляр ReminderService.
func NewReminderService(repo ReminderRepository, cache Cache, log *slog.Logger) *ReminderService {
	return &ReminderService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Ключ кеша включает владельца: чужая запись не достаётся из кеша
// даже при совпадении ID.
func cacheKey(username string, id int) string {
	return fmt.Sprintf("reminder:%s:%d", username, id)
}

// Create создает новое напоминание. Владелец берётся из аутентификации,
// любое значение владельца в теле запроса игнорируется. Перед записью
// проверяется кросс-полевое правило доставки.
func (s *ReminderService) Create(ctx context.Context, username string, req models.DummyReminder) (*models.Reminder, error) {
	fieldErrs := make(map[string]string)

	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		fieldErrs["date"] = "date must be in format " + DateLayout
	}
	if _, err := time.Parse(TimeLayout, req.Time); err != nil {
		fieldErrs["time"] = "time must be in format " + TimeLayout
	}

	method := req.Method
	if method == "" {
		method = models.MethodEmail
	}
	title := req.Title
	if title == "" {
		title = models.DefaultTitle
	}

	var email, phoneNumber *string
	if req.Email != "" {
		email = &req.Email
	}
	if req.PhoneNumber != "" {
		phoneNumber = &req.PhoneNumber
	}

	for field, msg := range models.DeliveryFieldErrors(method, email, phoneNumber) {
		fieldErrs[field] = msg
	}
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	entry := models.Reminder{
		Username:    username,
		Date:        date,
		Time:        req.Time,
		Title:       title,
		Message:     req.Message,
		Method:      method,
		Email:       email,
		PhoneNumber: phoneNumber,
	}

	created, err := s.repo.CreateReminder(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new reminder", slog.Int("id", created.ID))

	key := cacheKey(username, created.ID)
	if err := s.cache.Set(key, created, time.Hour); err != nil {
		s.log.Warn("failed to cache reminder", slog.String("key", key), slog.Any("err", err))
	}

	return created, nil
}

// Read возвращает напоминание по ID, используя кеш или репозиторий.
// Запись другого пользователя неотличима от несуществующей.
func (s *ReminderService) Read(ctx context.Context, id int, username string) (*models.Reminder, error) {
	var result *models.Reminder
	key := cacheKey(username, id)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ReadReminder(ctx, id, username)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// Update применяет частичное обновление: существующая запись сначала
// загружается в пределах владельца, новые поля накладываются поверх,
// и кросс-полевое правило проверяется уже для слитого результата.
func (s *ReminderService) Update(ctx context.Context, id int, username string, req models.DummyReminderUpdate) (*models.Reminder, error) {
	existing, err := s.repo.ReadReminder(ctx, id, username)
	if err != nil {
		return nil, err
	}

	fieldErrs := make(map[string]string)

	merged := *existing
	if req.Date != nil {
		date, err := time.Parse(DateLayout, *req.Date)
		if err != nil {
			fieldErrs["date"] = "date must be in format " + DateLayout
		} else {
			merged.Date = date
		}
	}
	if req.Time != nil {
		if _, err := time.Parse(TimeLayout, *req.Time); err != nil {
			fieldErrs["time"] = "time must be in format " + TimeLayout
		} else {
			merged.Time = *req.Time
		}
	}
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Message != nil {
		merged.Message = *req.Message
	}
	if req.Method != nil {
		merged.Method = *req.Method
	}
	if req.Email != nil {
		merged.Email = req.Email
	}
	if req.PhoneNumber != nil {
		merged.PhoneNumber = req.PhoneNumber
	}

	for field, msg := range models.DeliveryFieldErrors(merged.Method, merged.Email, merged.PhoneNumber) {
		fieldErrs[field] = msg
	}
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	updated, err := s.repo.UpdateReminder(ctx, merged)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated reminder in storage", slog.Int("id", id))

	key := cacheKey(username, id)
	if err := s.cache.Set(key, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache reminder", slog.String("key", key), slog.Any("err", err))
	}
	return updated, nil
}

// Remove удаляет напоминание владельца и инвалидирует кеш.
// Возвращает число удалённых строк: ноль означает, что записи нет.
func (s *ReminderService) Remove(ctx context.Context, id int, username string) (int, error) {
	key := cacheKey(username, id)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), slog.Any("err", err))
	}

	count, err := s.repo.RemoveReminder(ctx, id, username)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// List возвращает напоминания пользователя с пагинацией в порядке вставки.
func (s *ReminderService) List(ctx context.Context, username string, limit, offset int) ([]*models.Reminder, error) {
	return s.repo.ListReminders(ctx, username, limit, offset)
}
