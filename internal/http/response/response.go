// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Ошибки валидации
// возвращаются словарём "поле — сообщение", остальные ошибки — одной строкой.
package response

import (
	"fmt"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Errors — ошибки по конкретным полям (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string            `json:"status"`
	Error  string            `json:"error,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
	Data   any               `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// FieldErrors возвращает Response со словарём ошибок по полям.
func FieldErrors(errs map[string]string) Response {
	return Response{
		Status: StatusError,
		Errors: errs,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение превращается в сообщение для конкретного поля.
func ValidationError(errs validator.ValidationErrors) Response {
	errsMsgs := make(map[string]string, len(errs))

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs[err.Field()] = fmt.Sprintf("field %s is a required field", err.Field())
		case "email":
			errsMsgs[err.Field()] = fmt.Sprintf("field %s must be a valid email address", err.Field())
		case "oneof":
			errsMsgs[err.Field()] = fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param())
		case "min":
			errsMsgs[err.Field()] = fmt.Sprintf("field %s is shorter than %s characters", err.Field(), err.Param())
		case "max":
			errsMsgs[err.Field()] = fmt.Sprintf("field %s is longer than %s characters", err.Field(), err.Param())
		case "gte":
			errsMsgs[err.Field()] = fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param())
		default:
			errsMsgs[err.Field()] = fmt.Sprintf("field %s is not valid", err.Field())
		}
	}
	return Response{
		Status: StatusError,
		Errors: errsMsgs,
	}
}
