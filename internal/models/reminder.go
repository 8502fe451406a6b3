// Package models содержит доменные структуры, описывающие напоминание,
// а также вспомогательные типы для работы с данными из внешних источников
// (например, JSON-запросы) и правило кросс-полевой валидации доставки.
package models

import (
	"encoding/json"
	"time"
)

// Способы доставки напоминания.
const (
	MethodEmail = "Email"
	MethodSMS   = "SMS"
)

// DefaultTitle подставляется, если заголовок в запросе не указан.
const DefaultTitle = "Task Reminder"

// DateLayout — формат даты напоминания в JSON: и в запросах, и в ответах.
const DateLayout = "2006-01-02"

// Reminder представляет собой основную модель напоминания,
// используемую в бизнес-логике и хранилище. Каждое напоминание
// принадлежит ровно одному пользователю (поле Username).
type Reminder struct {
	ID          int       `json:"id"`                     // Идентификатор записи
	Username    string    `json:"username"`               // Имя пользователя-владельца
	Date        time.Time `json:"date"`                   // Дата напоминания
	Time        string    `json:"time"`                   // Время напоминания в формате 15:04
	Title       string    `json:"title"`                  // Заголовок
	Message     string    `json:"message"`                // Текст напоминания
	Method      string    `json:"reminder_method"`        // Способ доставки: Email или SMS
	Email       *string   `json:"email,omitempty"`        // Адрес получателя (для Email)
	PhoneNumber *string   `json:"phone_number,omitempty"` // Телефон получателя (для SMS)
	CreatedAt   time.Time `json:"created_at"`             // Когда запись создана
	UpdatedAt   time.Time `json:"updated_at"`             // Когда запись последний раз обновлялась
}

// MarshalJSON сериализует напоминание с датой в формате DateLayout,
// совпадающем с форматом поля date в запросах.
func (r Reminder) MarshalJSON() ([]byte, error) {
	type alias Reminder
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{
		alias: alias(r),
		Date:  r.Date.Format(DateLayout),
	})
}

// UnmarshalJSON принимает дату в формате DateLayout. Используется
// при чтении напоминаний из кеша, куда они попадают через MarshalJSON.
func (r *Reminder) UnmarshalJSON(data []byte) error {
	type alias Reminder
	aux := struct {
		*alias
		Date string `json:"date"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Date == "" {
		r.Date = time.Time{}
		return nil
	}
	date, err := time.Parse(DateLayout, aux.Date)
	if err != nil {
		return err
	}
	r.Date = date
	return nil
}

// DummyReminder используется для приёма данных из JSON-запроса на создание,
// прежде чем конвертировать их в Reminder. Даты приходят в виде строк,
// чтобы их можно было валидировать и парсить вручную. Поле владельца
// в запросе не принимается: владелец всегда берётся из токена.
type DummyReminder struct {
	Date        string `json:"date" validate:"required"`                            // Дата в формате 2006-01-02
	Time        string `json:"time" validate:"required"`                            // Время в формате 15:04
	Title       string `json:"title,omitempty"`                                     // Заголовок (опционально)
	Message     string `json:"message" validate:"required"`                         // Текст напоминания
	Method      string `json:"reminder_method,omitempty" validate:"omitempty,oneof=Email SMS"` // Способ доставки
	Email       string `json:"email,omitempty" validate:"omitempty,email"`          // Адрес получателя
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=15"`  // Телефон получателя
}

// DummyReminderUpdate используется для приёма данных частичного обновления.
// Поля-указатели: nil означает, что поле не передано и существующее
// значение сохраняется. Кросс-полевое правило проверяется уже после
// наложения этих полей на текущую запись.
type DummyReminderUpdate struct {
	Date        *string `json:"date,omitempty"`                                      // Дата в формате 2006-01-02
	Time        *string `json:"time,omitempty"`                                      // Время в формате 15:04
	Title       *string `json:"title,omitempty"`                                     // Заголовок
	Message     *string `json:"message,omitempty" validate:"omitempty,min=1"`        // Текст напоминания
	Method      *string `json:"reminder_method,omitempty" validate:"omitempty,oneof=Email SMS"` // Способ доставки
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`          // Адрес получателя
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=15"`  // Телефон получателя
}

// DeliveryFieldErrors проверяет кросс-полевое правило доставки:
// для Email обязателен непустой адрес, для SMS — непустой телефон.
// Условия проверяются независимо, все нарушения собираются в словарь
// "поле — сообщение". Пустой результат означает, что правило выполнено.
func DeliveryFieldErrors(method string, email, phoneNumber *string) map[string]string {
	errs := make(map[string]string)
	if method == MethodEmail && (email == nil || *email == "") {
		errs["email"] = "Email is required when Email reminder method is selected."
	}
	if method == MethodSMS && (phoneNumber == nil || *phoneNumber == "") {
		errs["phone_number"] = "Phone number is required when SMS reminder method is selected."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
