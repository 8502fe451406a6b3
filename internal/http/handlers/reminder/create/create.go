// Package create реализует HTTP-обработчик для создания новых напоминаний пользователя.
//
// Handler принимает JSON-запрос с данными напоминания, валидирует их, извлекает имя
// пользователя из контекста, вызывает бизнес-логику создания напоминания через сервис
// и возвращает созданную запись в JSON-формате.
//
// Нарушение кросс-полевого правила доставки возвращается как ошибки
// по конкретным полям со статусом 400, без записи в хранилище.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/reminder-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/reminder-planner/internal/http/response"
	"github.com/magabrotheeeer/reminder-planner/internal/lib/sl"
	"github.com/magabrotheeeer/reminder-planner/internal/lib/validation"
	"github.com/magabrotheeeer/reminder-planner/internal/models"
	services "github.com/magabrotheeeer/reminder-planner/internal/services/reminder"
)

// Service описывает интерфейс бизнес-логики создания напоминания.
type Service interface {
	Create(ctx context.Context, username string, req models.DummyReminder) (*models.Reminder, error)
}

// Handler управляет HTTP-запросами на создание новых напоминаний.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания напоминаний
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новое напоминание
// @Description Создает напоминание для текущего пользователя. Владелец берётся из токена.
// @Tags Reminders
// @Accept  json
// @Produce  json
// @Param request body models.DummyReminder true "Данные нового напоминания"
// @Success 201 {object} models.Reminder "Созданное напоминание"
// @Failure 400 {object} response.Response "Некорректный JSON или ошибки валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании напоминания"
// @Router /reminders [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyReminder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	created, err := h.service.Create(r.Context(), username, req)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			log.Error("delivery validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.FieldErrors(validationErr.Fields))
			return
		}
		log.Error("failed to create reminder", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create reminder"))
		return
	}

	log.Info("reminder created", slog.Int("id", created.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(created))
}
