package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/usercart/internal/models"
	"github.com/magabrotheeeer/usercart/internal/storage"
)

// SeedDemoData добавляет демонстрационных пользователей и посты.
// Уже существующие записи пропускаются.
func (s *Service) SeedDemoData(ctx context.Context) error {
	const op = "services.users.SeedDemoData"

	now := s.now().UTC()
	demoUsers := []models.User{
		{ID: "1", Name: "John Doe", Email: "john@example.com", PasswordHash: "hashedpassword", Salt: "salt", CreatedAt: now, IsActive: true},
		{ID: "2", Name: "Jane Smith", Email: "jane@example.com", PasswordHash: "hashedpassword", Salt: "salt", CreatedAt: now, IsActive: true},
	}
	demoPosts := []models.Post{
		{ID: "1", UserID: "1", Title: "First Post", Content: "This is my first post", CreatedAt: now},
		{ID: "2", UserID: "1", Title: "Second Post", Content: "This is my second post", CreatedAt: now},
	}

	seeded := 0
	for _, u := range demoUsers {
		err := s.users.CreateUser(ctx, u)
		switch {
		case err == nil:
			seeded++
		case errors.Is(err, storage.ErrUserExists), errors.Is(err, storage.ErrEmailTaken):
		default:
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	for _, p := range demoPosts {
		err := s.posts.CreatePost(ctx, p)
		switch {
		case err == nil:
			seeded++
		case errors.Is(err, storage.ErrPostExists):
		default:
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	s.log.Info("demo data seeded", slog.Int("records", seeded))
	return nil
}
