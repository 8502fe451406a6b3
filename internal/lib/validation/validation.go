// Package validation настраивает общий валидатор структур.
// Имена полей в ошибках берутся из json-тегов, чтобы клиент получал
// ошибки в терминах полей запроса, а не полей Go-структур.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// New возвращает валидатор, сообщающий об ошибках именами json-полей.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
