// Package create реализует HTTP-обработчик регистрации пользователя.
//
// Handler принимает JSON с именем, email и паролем, проверяет наличие полей,
// передаёт данные сервису и возвращает публичное представление пользователя
// со статусом 201.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/usercart/internal/http/response"
	"github.com/magabrotheeeer/usercart/internal/lib/sl"
	"github.com/magabrotheeeer/usercart/internal/models"
	"github.com/magabrotheeeer/usercart/internal/services/users"
)

// Handler управляет HTTP-запросами на создание пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания пользователя.
type Service interface {
	Create(ctx context.Context, name, email, password string) (*models.UserResponse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать пользователя
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.CreateUserRequest true "Данные нового пользователя"
// @Success 201 {object} models.UserResponse
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 500 {object} response.ErrorResponse
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		response.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Create(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, users.ErrValidation):
		log.Info("invalid user data", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, users.ErrConflict):
		log.Info("email already exists")
		response.WriteError(w, r, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Error("failed to create user", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not create user")
		return
	}

	log.Info("user created", slog.String("id", user.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}
