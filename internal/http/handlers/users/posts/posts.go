// Package posts реализует HTTP-обработчик получения пользователя вместе с его постами.
package posts

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/usercart/internal/http/response"
	"github.com/magabrotheeeer/usercart/internal/lib/sl"
	"github.com/magabrotheeeer/usercart/internal/models"
	"github.com/magabrotheeeer/usercart/internal/services/users"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	FindOneWithPosts(ctx context.Context, id string) (*models.UserWithPosts, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Пользователь с постами
// @Tags Users
// @Produce  json
// @Param id path string true "ID пользователя"
// @Success 200 {object} models.UserWithPosts
// @Failure 400 {object} response.ErrorResponse "Пустой ID"
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id}/posts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.posts"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		log.Info("empty user id")
		response.WriteError(w, r, http.StatusBadRequest, "valid ID is required")
		return
	}

	res, err := h.service.FindOneWithPosts(r.Context(), id)
	switch {
	case errors.Is(err, users.ErrValidation):
		response.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, users.ErrNotFound):
		log.Info("user not found", slog.String("id", id))
		response.WriteError(w, r, http.StatusNotFound, err.Error())
		return
	case err != nil:
		log.Error("failed to read user posts", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not read user posts")
		return
	}

	render.JSON(w, r, res)
}
