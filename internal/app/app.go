// Package app собирает приложение: хранилище, миграции, кеш, сервисы,
// маршруты и HTTP-сервер с корректным завершением работы.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/reminder-planner/internal/cache"
	"github.com/magabrotheeeer/reminder-planner/internal/config"
	"github.com/magabrotheeeer/reminder-planner/internal/lib/jwt"
	"github.com/magabrotheeeer/reminder-planner/internal/migrations"
	authservice "github.com/magabrotheeeer/reminder-planner/internal/services/auth"
	reminderservice "github.com/magabrotheeeer/reminder-planner/internal/services/reminder"
	userservice "github.com/magabrotheeeer/reminder-planner/internal/services/user"
	"github.com/magabrotheeeer/reminder-planner/internal/storage"
)

// App держит HTTP-сервер и ресурсы, освобождаемые при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New инициализирует все зависимости и возвращает готовое к запуску приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.AccessTTL, cfg.RefreshTTL)

	authService := authservice.NewAuthService(db, cacheRedis, jwtMaker, cfg.RefreshTTL)
	userService := userservice.NewUserService(db)
	reminderService := reminderservice.NewReminderService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, userService, reminderService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки по контексту.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.cache.Db.Close()
		return err
	}
}
