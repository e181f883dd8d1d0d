// Package postgresql реализует хранилище пользователей и постов на основе PostgreSQL.
// Схема создаётся миграциями из каталога migrations.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/usercart/internal/models"
	"github.com/magabrotheeeer/usercart/internal/storage"
)

const (
	uniqueViolation = "23505"

	usersPKey        = "users_pkey"
	usersActiveEmail = "users_active_email_idx"
	postsPKey        = "posts_pkey"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// Close закрывает соединение.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// ===== USER METHODS =====

// CreateUser вставляет нового пользователя.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.postgresql.CreateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, name, email, password_hash, salt, created_at, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Salt, user.CreatedAt, user.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case usersActiveEmail:
				return fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
			case usersPKey:
				return fmt.Errorf("%s: %w", op, storage.ErrUserExists)
			}
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser возвращает пользователя по ID независимо от активности.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.postgresql.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, salt, created_at, is_active
			  FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetActiveUserByEmail ищет активного пользователя по email без учёта регистра.
func (s *Storage) GetActiveUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgresql.GetActiveUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, salt, created_at, is_active
			  FROM users WHERE lower(email) = lower($1) AND is_active`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListActiveUsers возвращает активных пользователей в порядке создания.
func (s *Storage) ListActiveUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.postgresql.ListActiveUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, salt, created_at, is_active
			  FROM users WHERE is_active ORDER BY seq`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	res := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Salt,
			&u.CreatedAt, &u.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// DeactivateUser выставляет is_active = false.
func (s *Storage) DeactivateUser(ctx context.Context, id string) error {
	const op = "storage.postgresql.DeactivateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `UPDATE users SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return nil
}

// ===== POST METHODS =====

// CreatePost вставляет пост.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) error {
	const op = "storage.postgresql.CreatePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO posts (id, user_id, title, content, created_at)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query, post.ID, post.UserID, post.Title, post.Content, post.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == postsPKey {
			return fmt.Errorf("%s: %w", op, storage.ErrPostExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListPostsByUser возвращает посты пользователя в порядке создания.
func (s *Storage) ListPostsByUser(ctx context.Context, userID string) ([]models.Post, error) {
	const op = "storage.postgresql.ListPostsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, title, content, created_at
			  FROM posts WHERE user_id = $1 ORDER BY seq`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	res := make([]models.Post, 0)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Salt, &u.CreatedAt, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
