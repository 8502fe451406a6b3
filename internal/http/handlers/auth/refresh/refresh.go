// Package refresh реализует HTTP-обработчик ротации refresh-токена.
//
// Предъявленный refresh-токен отзывается, взамен выдаётся новая пара
// access/refresh токенов. Невалидный, истёкший или уже отозванный токен
// даёт 401 Unauthorized; отключённая учётная запись — 403.
package refresh

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
	services "github.com/magabrotheeeer/reminder-planner/internal/services/auth"
)

// Request — входные данные для ротации токена.
type Request struct {
	Refresh string `json:"refresh" validate:"required"`
}

// Service описывает интерфейс бизнес-логики ротации токенов.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// Handler обрабатывает HTTP-запросы на обновление пары токенов.
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
	const op = "handlers.auth.refresh"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken):
			log.Error("invalid refresh token")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid or expired refresh token"))
		case errors.Is(err, services.ErrUserDisabled):
			log.Error("disabled account refresh attempt")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("user account is disabled"))
		default:
			log.Error("refresh failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not refresh token"))
		}
		return
	}

	log.Info("token pair rotated")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}))
}
