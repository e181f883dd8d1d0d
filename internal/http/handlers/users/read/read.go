package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

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
	FindOne(ctx context.Context, id string) (*models.UserResponse, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить пользователя
// @Tags Users
// @Produce  json
// @Param id path string true "ID пользователя"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	user, err := h.service.FindOne(r.Context(), id)
	switch {
	case errors.Is(err, users.ErrValidation):
		response.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, users.ErrNotFound):
		log.Info("user not found", slog.String("id", id))
		response.WriteError(w, r, http.StatusNotFound, err.Error())
		return
	case err != nil:
		log.Error("failed to read user", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not read user")
		return
	}

	render.JSON(w, r, user)
}
