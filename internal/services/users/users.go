// Package users содержит бизнес-логику управления пользователями:
// регистрацию с валидацией и хешированием пароля, выборки и мягкое удаление.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/usercart/internal/lib/password"
	"github.com/magabrotheeeer/usercart/internal/lib/sl"
	"github.com/magabrotheeeer/usercart/internal/models"
	"github.com/magabrotheeeer/usercart/internal/storage"
)

const (
	MinNameLength     = 2
	MinPasswordLength = 6

	EventUserCreated = "user.created"
	EventUserRemoved = "user.removed"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Publisher публикует события о пользователях.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Options дополнительные настройки сервиса.
type Options struct {
	// IdempotentRemove разрешает повторное удаление уже неактивного пользователя.
	IdempotentRemove bool
	// CacheTTL время жизни записи в кеше.
	CacheTTL time.Duration
	// Publisher может быть nil, тогда события не публикуются.
	Publisher Publisher
}

// Service реализует операции над пользователями.
type Service struct {
	users     storage.UserRepository
	posts     storage.PostRepository
	cache     Cache
	publisher Publisher
	log       *slog.Logger

	idempotentRemove bool
	cacheTTL         time.Duration
	hash             func(password string) (string, string, error)
	now              func() time.Time
}

// New создаёт сервис пользователей.
func New(users storage.UserRepository, posts storage.PostRepository, cache Cache, log *slog.Logger, opts Options) *Service {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		users:            users,
		posts:            posts,
		cache:            cache,
		publisher:        opts.Publisher,
		log:              log,
		idempotentRemove: opts.IdempotentRemove,
		cacheTTL:         ttl,
		hash:             password.Hash,
		now:              time.Now,
	}
}

// UserCreatedEvent тело события user.created.
type UserCreatedEvent struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRemovedEvent тело события user.removed.
type UserRemovedEvent struct {
	ID string `json:"id"`
}

// Create регистрирует пользователя и возвращает его публичное представление.
func (s *Service) Create(ctx context.Context, name, email, pass string) (*models.UserResponse, error) {
	const op = "services.users.Create"

	if err := validateCreate(name, email, pass); err != nil {
		return nil, err
	}

	_, err := s.users.GetActiveUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, conflictError("email already exists")
	case !errors.Is(err, storage.ErrUserNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, salt, err := s.hash(pass)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    s.now().UTC(),
		IsActive:     true,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, conflictError("email already exists")
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new user", slog.String("id", user.ID))
	s.publish(ctx, EventUserCreated, UserCreatedEvent{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt})

	res := user.Public()
	return &res, nil
}

// FindAll возвращает всех активных пользователей.
func (s *Service) FindAll(ctx context.Context) ([]models.UserResponse, error) {
	const op = "services.users.FindAll"

	users, err := s.users.ListActiveUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, u.Public())
	}
	return res, nil
}

// FindOne возвращает активного пользователя по ID, используя кеш.
func (s *Service) FindOne(ctx context.Context, id string) (*models.UserResponse, error) {
	const op = "services.users.FindOne"

	if id == "" {
		return nil, validationError("valid ID is required")
	}

	cacheKey := userCacheKey(id)
	var cached models.UserResponse
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found && cached.IsActive {
		return &cached, nil
	}

	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, userNotFound(id)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		return nil, userNotFound(id)
	}

	res := user.Public()
	if err := s.cache.Set(cacheKey, res, s.cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return &res, nil
}

// FindOneWithPosts возвращает активного пользователя вместе с его постами.
func (s *Service) FindOneWithPosts(ctx context.Context, id string) (*models.UserWithPosts, error) {
	const op = "services.users.FindOneWithPosts"

	user, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListPostsByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if posts == nil {
		posts = make([]models.Post, 0)
	}

	return &models.UserWithPosts{UserResponse: *user, Posts: posts}, nil
}

// Remove мягко удаляет пользователя. Повторное удаление возвращает ErrNotFound,
// если не включён режим IdempotentRemove.
func (s *Service) Remove(ctx context.Context, id string) error {
	const op = "services.users.Remove"

	if id == "" {
		return validationError("valid ID is required")
	}

	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return userNotFound(id)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		if s.idempotentRemove {
			return nil
		}
		return userNotFound(id)
	}

	// Кеш сбрасывается до деактивации: если сброс не удался, пользователь
	// остаётся активным и устаревшая запись в кеше не переживёт удаление.
	cacheKey := userCacheKey(id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.users.DeactivateUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return userNotFound(id)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	// Повторный сброс на случай, если параллельный FindOne успел заполнить кеш.
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}

	s.log.Info("removed user", slog.String("id", id))
	s.publish(ctx, EventUserRemoved, UserRemovedEvent{ID: id})
	return nil
}

func (s *Service) publish(ctx context.Context, key string, msg any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, msg); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", key), sl.Err(err))
	}
}

func validateCreate(name, email, pass string) error {
	if email == "" || !emailRegexp.MatchString(email) {
		return validationError("valid email is required")
	}
	if utf8.RuneCountInString(name) < MinNameLength {
		return validationError(fmt.Sprintf("name must be at least %d characters long", MinNameLength))
	}
	if utf8.RuneCountInString(pass) < MinPasswordLength {
		return validationError(fmt.Sprintf("password must be at least %d characters long", MinPasswordLength))
	}
	return nil
}

func userNotFound(id string) error {
	return notFoundError(fmt.Sprintf("user with ID %s not found", id))
}

func userCacheKey(id string) string {
	return "user:" + id
}
