// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и профильные поля.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Поле PasswordHash никогда не сериализуется в HTTP-ответы:
// для ответов используется отдельная структура Profile.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта
	PasswordHash string    // Хэш пароля пользователя
	Age          *int      // Возраст (опционально)
	Bio          *string   // Краткая информация о себе (опционально)
	IsActive     bool      // Признак активной учётной записи
	CreatedAt    time.Time // Дата регистрации
}

// Profile описывает публичное представление пользователя,
// возвращаемое HTTP-обработчиками. Хэш пароля сюда не попадает.
type Profile struct {
	UID      string  `json:"uid"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Age      *int    `json:"age,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

// ToProfile конвертирует пользователя в публичный профиль.
func (u *User) ToProfile() Profile {
	return Profile{
		UID:      u.UID,
		Username: u.Username,
		Email:    u.Email,
		Age:      u.Age,
		Bio:      u.Bio,
	}
}

// DummyProfileUpdate используется для приёма данных частичного обновления
// профиля из JSON-запроса. Поля-указатели: nil означает, что поле
// не передано и значение в базе остаётся прежним. Пароль через этот
// запрос изменить нельзя — поля для него здесь нет.
type DummyProfileUpdate struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email"` // Новая электронная почта
	Age   *int    `json:"age,omitempty" validate:"omitempty,gte=0"`   // Новый возраст
	Bio   *string `json:"bio,omitempty"`                              // Новая информация о себе
}
