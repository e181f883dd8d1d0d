// Package memory реализует хранилище пользователей и постов в памяти процесса.
// Записи хранятся в map по ID, порядок вставки сохраняется отдельно.
// Если задан путь дампа, после каждого изменения состояние сохраняется в JSON-файл.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/magabrotheeeer/usercart/internal/lib/sl"
	"github.com/magabrotheeeer/usercart/internal/models"
	"github.com/magabrotheeeer/usercart/internal/storage"
)

// Storage хранилище в памяти, реализует storage.UserRepository и storage.PostRepository.
type Storage struct {
	mu        sync.RWMutex
	users     map[string]models.User
	userOrder []string
	posts     map[string]models.Post
	postOrder []string

	dumpPath string
	log      *slog.Logger
}

// New создаёт пустое хранилище без дампа.
func New() *Storage {
	return &Storage{
		users: make(map[string]models.User),
		posts: make(map[string]models.Post),
		log:   sl.Discard(),
	}
}

// Open создаёт хранилище с дампом в dumpPath и загружает из него данные, если файл существует.
func Open(dumpPath string, log *slog.Logger) (*Storage, error) {
	const op = "storage.memory.Open"

	s := New()
	s.dumpPath = dumpPath
	s.log = log

	snap, err := loadSnapshot(dumpPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, u := range snap.Users {
		if _, ok := s.users[u.ID]; ok {
			continue
		}
		s.users[u.ID] = u
		s.userOrder = append(s.userOrder, u.ID)
	}
	for _, p := range snap.Posts {
		if _, ok := s.posts[p.ID]; ok {
			continue
		}
		s.posts[p.ID] = p
		s.postOrder = append(s.postOrder, p.ID)
	}

	log.Info("memory storage opened",
		slog.String("dump_path", dumpPath),
		slog.Int("users", len(s.userOrder)),
		slog.Int("posts", len(s.postOrder)),
	)
	return s, nil
}

// CreateUser сохраняет нового пользователя.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.memory.CreateUser"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrUserExists)
	}
	if user.IsActive {
		if _, ok := s.activeByEmail(user.Email); ok {
			return fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}
	}

	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	s.dump()
	return nil
}

// GetUser возвращает пользователя по ID, в том числе неактивного.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.memory.GetUser"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return &u, nil
}

// GetActiveUserByEmail ищет активного пользователя по email без учёта регистра.
func (s *Storage) GetActiveUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.memory.GetActiveUserByEmail"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.activeByEmail(email)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return &u, nil
}

// ListActiveUsers возвращает активных пользователей в порядке создания.
func (s *Storage) ListActiveUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.memory.ListActiveUsers"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		if u := s.users[id]; u.IsActive {
			res = append(res, u)
		}
	}
	return res, nil
}

// DeactivateUser помечает пользователя неактивным.
func (s *Storage) DeactivateUser(ctx context.Context, id string) error {
	const op = "storage.memory.DeactivateUser"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	u.IsActive = false
	s.users[id] = u
	s.dump()
	return nil
}

// CreatePost сохраняет пост.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) error {
	const op = "storage.memory.CreatePost"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrPostExists)
	}
	s.posts[post.ID] = post
	s.postOrder = append(s.postOrder, post.ID)
	s.dump()
	return nil
}

// ListPostsByUser возвращает посты пользователя в порядке создания.
func (s *Storage) ListPostsByUser(ctx context.Context, userID string) ([]models.Post, error) {
	const op = "storage.memory.ListPostsByUser"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.Post, 0)
	for _, id := range s.postOrder {
		if p := s.posts[id]; p.UserID == userID {
			res = append(res, p)
		}
	}
	return res, nil
}

// activeByEmail вызывается под блокировкой.
func (s *Storage) activeByEmail(email string) (models.User, bool) {
	for _, id := range s.userOrder {
		u := s.users[id]
		if u.IsActive && strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

// dump вызывается под блокировкой на запись. Ошибки только логируются.
func (s *Storage) dump() {
	if s.dumpPath == "" {
		return
	}

	snap := snapshot{
		Users: make([]models.User, 0, len(s.userOrder)),
		Posts: make([]models.Post, 0, len(s.postOrder)),
	}
	for _, id := range s.userOrder {
		snap.Users = append(snap.Users, s.users[id])
	}
	for _, id := range s.postOrder {
		snap.Posts = append(snap.Posts, s.posts[id])
	}

	if err := saveSnapshot(s.dumpPath, snap); err != nil {
		s.log.Warn("failed to dump storage", slog.String("dump_path", s.dumpPath), sl.Err(err))
	}
}
