package remove

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
	"github.com/magabrotheeeer/usercart/internal/services/users"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Remove(ctx context.Context, id string) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить пользователя
// @Description Мягкое удаление: пользователь становится неактивным.
// @Tags Users
// @Param id path string true "ID пользователя"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	err := h.service.Remove(r.Context(), id)
	switch {
	case errors.Is(err, users.ErrValidation):
		response.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, users.ErrNotFound):
		log.Info("user not found", slog.String("id", id))
		response.WriteError(w, r, http.StatusNotFound, err.Error())
		return
	case err != nil:
		log.Error("failed to remove user", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not remove user")
		return
	}

	log.Info("user removed", slog.String("id", id))
	render.NoContent(w, r)
}
