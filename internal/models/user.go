// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, соль и признак активности.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Пользователь не удаляется физически: удаление выставляет IsActive в false.
type User struct {
	ID           string    `json:"id"`           // Уникальный идентификатор пользователя
	Name         string    `json:"name"`         // Имя пользователя
	Email        string    `json:"email"`        // Электронная почта в нижнем регистре
	PasswordHash string    `json:"passwordHash"` // Хэш пароля (hex)
	Salt         string    `json:"salt"`         // Соль (hex)
	CreatedAt    time.Time `json:"createdAt"`    // Дата создания
	IsActive     bool      `json:"isActive"`     // false после мягкого удаления
}

// UserResponse публичное представление пользователя, без хэша и соли.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `json:"isActive"`
}

// UserWithPosts публичное представление пользователя вместе с его постами.
type UserWithPosts struct {
	UserResponse
	Posts []Post `json:"posts"`
}

// Public возвращает публичное представление пользователя.
func (u User) Public() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		IsActive:  u.IsActive,
	}
}

// CreateUserRequest используется для приёма данных регистрации из JSON-запроса.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
