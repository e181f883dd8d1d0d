// Package storage описывает контракт хранилища пользователей и постов.
// Реализации: memory (память процесса с опциональным JSON-дампом)
// и postgresql. Бизнес-логика зависит только от интерфейсов ниже.
package storage

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/usercart/internal/models"
)

var (
	// ErrUserNotFound пользователь с таким ID отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists пользователь с таким ID уже сохранён.
	ErrUserExists = errors.New("user already exists")
	// ErrEmailTaken email уже занят активным пользователем.
	ErrEmailTaken = errors.New("email already taken")
	// ErrPostExists пост с таким ID уже сохранён.
	ErrPostExists = errors.New("post already exists")
)

// UserRepository хранилище пользователей.
type UserRepository interface {
	// CreateUser сохраняет пользователя. Возвращает ErrEmailTaken, если email
	// занят активным пользователем, и ErrUserExists при повторе ID.
	CreateUser(ctx context.Context, user models.User) error
	// GetUser возвращает пользователя по ID независимо от активности.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetActiveUserByEmail ищет активного пользователя по email без учёта регистра.
	GetActiveUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListActiveUsers возвращает активных пользователей в порядке создания.
	ListActiveUsers(ctx context.Context) ([]models.User, error)
	// DeactivateUser выставляет IsActive в false.
	DeactivateUser(ctx context.Context, id string) error
}

// PostRepository хранилище постов.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) error
	ListPostsByUser(ctx context.Context, userID string) ([]models.Post, error)
}
