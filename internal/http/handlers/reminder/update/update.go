// Package update реализует HTTP-обработчик частичного обновления напоминания.
//
// Новые поля накладываются на существующую запись, кросс-полевое правило
// доставки проверяется для слитого результата. Чужая или несуществующая
// запись даёт 404 до какой-либо валидации.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/reminder-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/reminder-planner/internal/http/response"
	"github.com/magabrotheeeer/reminder-planner/internal/lib/sl"
	"github.com/magabrotheeeer/reminder-planner/internal/lib/validation"
	"github.com/magabrotheeeer/reminder-planner/internal/models"
	services "github.com/magabrotheeeer/reminder-planner/internal/services/reminder"
	"github.com/magabrotheeeer/reminder-planner/internal/storage"
)

// Service описывает интерфейс бизнес-логики обновления напоминания.
type Service interface {
	Update(ctx context.Context, id int, username string, req models.DummyReminderUpdate) (*models.Reminder, error)
}

// Handler обрабатывает запросы на частичное обновление напоминания.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyReminderUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	updated, err := h.service.Update(r.Context(), id, username, req)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, storage.ErrReminderNotFound):
			log.Info("reminder not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("reminder not found"))
		case errors.As(err, &validationErr):
			log.Error("delivery validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.FieldErrors(validationErr.Fields))
		default:
			log.Error("failed to update reminder", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update reminder"))
		}
		return
	}

	log.Info("reminder updated", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(updated))
}
