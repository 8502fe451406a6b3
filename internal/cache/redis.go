// Package cache реализует работу с Redis: кеш чтения напоминаний
// и хранилище выданных refresh-токенов.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/reminder-planner/internal/config"
)

// ErrRefreshTokenNotFound возвращается, если refresh-токен с данным
// идентификатором не выдавался или уже отозван.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

const refreshTokenKeyPrefix = "refresh_token:"

// Cache инкапсулирует клиент Redis.
type Cache struct {
	Db *redis.Client
}

// InitServer создаёт клиент Redis по настройкам из конфига и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Get пытается получить значение из кеша по ключу и распаковать его в result.
// Возвращает false без ошибки, если ключа нет.
func (c *Cache) Get(key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	err = json.Unmarshal([]byte(val), result)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение в кеш с временем жизни.
func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Db.Set(context.Background(), key, jsonData, expiration).Err()
}

// Invalidate удаляет значение из кеша по ключу.
func (c *Cache) Invalidate(key string) error {
	return c.Db.Del(context.Background(), key).Err()
}

// StoreRefreshToken регистрирует выданный refresh-токен: ключом служит
// его идентификатор (jti), значением — имя пользователя. TTL совпадает
// со сроком жизни самого токена.
func (c *Cache) StoreRefreshToken(ctx context.Context, tokenID, username string, ttl time.Duration) error {
	const op = "cache.StoreRefreshToken"
	if err := c.Db.Set(ctx, refreshTokenKeyPrefix+tokenID, username, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetRefreshToken возвращает имя пользователя, которому выдан refresh-токен
// с данным идентификатором, либо ErrRefreshTokenNotFound.
func (c *Cache) GetRefreshToken(ctx context.Context, tokenID string) (string, error) {
	const op = "cache.GetRefreshToken"
	username, err := c.Db.Get(ctx, refreshTokenKeyPrefix+tokenID).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("%s: %w", op, ErrRefreshTokenNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return username, nil
}

// DeleteRefreshToken отзывает refresh-токен по идентификатору.
// Используется при ротации: старый токен одноразовый.
func (c *Cache) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	const op = "cache.DeleteRefreshToken"
	if err := c.Db.Del(ctx, refreshTokenKeyPrefix+tokenID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
