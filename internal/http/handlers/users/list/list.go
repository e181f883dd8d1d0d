package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/usercart/internal/http/response"
	"github.com/magabrotheeeer/usercart/internal/lib/sl"
	"github.com/magabrotheeeer/usercart/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	FindAll(ctx context.Context) ([]models.UserResponse, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список активных пользователей
// @Tags Users
// @Produce  json
// @Success 200 {array} models.UserResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.FindAll(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not list users")
		return
	}

	log.Debug("users listed", slog.Int("count", len(res)))
	render.JSON(w, r, res)
}
