// Package app предоставляет маршруты приложения.
package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/reminder-planner/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/reminder-planner/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/reminder-planner/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/reminder-planner/internal/http/handlers/health"
	profileget "github.com/magabrotheeeer/reminder-planner/internal/http/handlers/profile/get"
	profileremove "github.com/magabrotheeeer/reminder-planner/internal/http/handlers/profile/remove"
	profileupdate "github.com/magabrotheeeer/reminder-planner/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/reminder-planner/internal/http/handlers/reminder/create"
	"github.com/magabrotheeeer/reminder-planner/internal/http/handlers/reminder/list"
	"github.com/magabrotheeeer/reminder-planner/internal/http/handlers/reminder/read"
	"github.com/magabrotheeeer/reminder-planner/internal/http/handlers/reminder/remove"
	"github.com/magabrotheeeer/reminder-planner/internal/http/handlers/reminder/update"
	"github.com/magabrotheeeer/reminder-planner/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/reminder-planner/internal/services/auth"
	reminderservice "github.com/magabrotheeeer/reminder-planner/internal/services/reminder"
	userservice "github.com/magabrotheeeer/reminder-planner/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
// Маршруты напоминаний, включая список и создание, требуют аутентификации.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	reminderService *reminderservice.ReminderService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/token/refresh", refresh.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/profile", profileget.New(logger, userService).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, userService).ServeHTTP)
			r.Delete("/profile", profileremove.New(logger, userService).ServeHTTP)

			r.Get("/reminders", list.New(logger, reminderService).ServeHTTP)
			r.Post("/reminders", create.New(logger, reminderService).ServeHTTP)
			r.Get("/reminders/{id}", read.New(logger, reminderService).ServeHTTP)
			r.Put("/reminders/{id}", update.New(logger, reminderService).ServeHTTP)
			r.Delete("/reminders/{id}", remove.New(logger, reminderService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
