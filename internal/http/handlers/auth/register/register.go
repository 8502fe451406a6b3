// Package register реализует HTTP-обработчик регистрации новых пользователей.
//
// Handler принимает JSON-запрос с учётными данными, валидирует их,
// делегирует создание пользователя сервису аутентификации и возвращает
// созданный профиль (без пароля) со статусом 201. Коллизия имени
// пользователя возвращается как ошибка поля username со статусом 400.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/reminder-planner/internal/http/response"
	"github.com/magabrotheeeer/reminder-planner/internal/lib/sl"
	"github.com/magabrotheeeer/reminder-planner/internal/lib/validation"
	"github.com/magabrotheeeer/reminder-planner/internal/models"
	"github.com/magabrotheeeer/reminder-planner/internal/storage"
)

// Request — входные данные для регистрации.
type Request struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Age      *int    `json:"age,omitempty" validate:"omitempty,gte=0"`
	Bio      *string `json:"bio,omitempty"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, rawPassword string, age *int, bio *string) (*models.Profile, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
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

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает нового пользователя. Возвращает профиль без пароля.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} models.Profile "Созданный профиль"
// @Failure 400 {object} response.Response "Ошибки валидации или занятое имя"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	profile, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password, req.Age, req.Bio)
	if err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			log.Error("username already taken", slog.String("username", req.Username))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.FieldErrors(map[string]string{
				"username": "A user with that username already exists.",
			}))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("username", profile.Username))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(profile))
}
