// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и ссылку на refresh-токен.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// RefreshToken — серверная отметка активной сессии: если поле nil,
// пользователь считается разлогиненным, даже если access-токен
// криптографически ещё действителен.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	RefreshToken *string   // Refresh-токен активной сессии, nil — сессии нет
	CreatedAt    time.Time // Дата регистрации
	UpdatedAt    time.Time // Дата последнего изменения
}

// PublicUser — безопасное представление пользователя для ответов API
// и контекста запроса: без хэша пароля и без refresh-токена.
type PublicUser struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public возвращает представление пользователя без чувствительных полей.
func (u *User) Public() PublicUser {
	return PublicUser{
		UID:      u.UID,
		Username: u.Username,
		Email:    u.Email,
	}
}
