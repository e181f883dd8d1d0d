package usercart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/usercart/internal/cache"
	"github.com/magabrotheeeer/usercart/internal/config"
	"github.com/magabrotheeeer/usercart/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/usercart/internal/lib/sl"
	"github.com/magabrotheeeer/usercart/internal/metrics"
	"github.com/magabrotheeeer/usercart/internal/migrations"
	cartservice "github.com/magabrotheeeer/usercart/internal/services/cart"
	userservice "github.com/magabrotheeeer/usercart/internal/services/users"
	"github.com/magabrotheeeer/usercart/internal/storage"
	"github.com/magabrotheeeer/usercart/internal/storage/memory"
	"github.com/magabrotheeeer/usercart/internal/storage/postgresql"
)

const shutdownTimeout = 15 * time.Second

type repository interface {
	storage.UserRepository
	storage.PostRepository
}

type closer struct {
	name  string
	close func() error
}

type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []closer
}

// New собирает зависимости приложения. Пустые адреса Postgres, Redis и RabbitMQ
// отключают соответствующие компоненты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.usercart.New"
	a := &App{logger: logger}

	repo, err := a.initStorage(cfg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userCache, err := a.initCache(ctx, cfg.RedisConnection)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	publisher, err := a.initPublisher(cfg.RabbitMQ)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := userservice.Options{
		IdempotentRemove: cfg.IdempotentRemove,
		CacheTTL:         cfg.CacheTTL,
	}
	if publisher != nil {
		opts.Publisher = publisher
	}
	userService := userservice.New(repo, repo, userCache, logger, opts)

	if cfg.SeedDemoData {
		if err := userService.SeedDemoData(ctx); err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, userService, cartservice.New(cfg.EffectiveTaxRate()), metrics.New("usercart"))

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

func (a *App) initStorage(cfg *config.Config) (repository, error) {
	if cfg.StorageConnectionString == "" {
		if cfg.DumpPath == "" {
			a.logger.Info("using in-memory storage")
			return memory.New(), nil
		}
		return memory.Open(cfg.DumpPath, a.logger)
	}

	db, err := postgresql.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer{name: "postgres", close: db.Close})

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	a.logger.Info("using postgres storage")
	return db, nil
}

func (a *App) initCache(ctx context.Context, cfg config.RedisConnection) (userservice.Cache, error) {
	if cfg.AddressRedis == "" {
		a.logger.Info("redis is not configured, cache disabled")
		return cache.Noop{}, nil
	}

	c, err := cache.InitServer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer{name: "redis", close: c.Close})
	return c, nil
}

func (a *App) initPublisher(cfg config.RabbitMQ) (*rabbitmq.Publisher, error) {
	if cfg.URL == "" {
		a.logger.Info("rabbitmq is not configured, events disabled")
		return nil, nil
	}

	conn, err := rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer{name: "rabbitmq connection", close: conn.Close})

	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange)
	if err != nil {
		return nil, err
	}
	// Канал закрывается раньше соединения.
	a.closers = append(a.closers, closer{name: "rabbitmq channel", close: ch.Close})

	return rabbitmq.NewPublisher(ch, cfg.Exchange), nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

// close освобождает ресурсы в обратном порядке открытия.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			a.logger.Warn("failed to close resource", slog.String("resource", c.name), sl.Err(err))
		}
	}
	a.closers = nil
}
