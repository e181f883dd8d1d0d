// Package usercart собирает HTTP-приложение: хранилище, сервисы и маршруты.
package usercart

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация Swagger-описания для /docs.
	_ "github.com/magabrotheeeer/usercart/internal/docs"
	cartadd "github.com/magabrotheeeer/usercart/internal/http/handlers/cart/add"
	cartclear "github.com/magabrotheeeer/usercart/internal/http/handlers/cart/clear"
	cartlist "github.com/magabrotheeeer/usercart/internal/http/handlers/cart/list"
	cartremove "github.com/magabrotheeeer/usercart/internal/http/handlers/cart/remove"
	"github.com/magabrotheeeer/usercart/internal/http/handlers/health"
	"github.com/magabrotheeeer/usercart/internal/http/handlers/users/create"
	"github.com/magabrotheeeer/usercart/internal/http/handlers/users/list"
	"github.com/magabrotheeeer/usercart/internal/http/handlers/users/posts"
	"github.com/magabrotheeeer/usercart/internal/http/handlers/users/read"
	"github.com/magabrotheeeer/usercart/internal/http/handlers/users/remove"
	"github.com/magabrotheeeer/usercart/internal/metrics"
	cartservice "github.com/magabrotheeeer/usercart/internal/services/cart"
	userservice "github.com/magabrotheeeer/usercart/internal/services/users"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, userService *userservice.Service, cart *cartservice.Cart, m *metrics.Metrics) {
	// Глобальные middleware. URLFormat не подключается: он отрезает ".ext"
	// от пути, и /users/1.json попадал бы на пользователя "1".
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		m.Middleware,
	)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", create.New(logger, userService).ServeHTTP)
		r.Get("/", list.New(logger, userService).ServeHTTP)
		r.Get("/{id}", read.New(logger, userService).ServeHTTP)
		r.Get("/{id}/posts", posts.New(logger, userService).ServeHTTP)
		r.Delete("/{id}", remove.New(logger, userService).ServeHTTP)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartlist.New(cart).ServeHTTP)
		r.Delete("/", cartclear.New(logger, cart).ServeHTTP)
		r.Post("/items", cartadd.New(logger, cart).ServeHTTP)
		r.Delete("/items/{id}", cartremove.New(logger, cart).ServeHTTP)
	})

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", m.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
