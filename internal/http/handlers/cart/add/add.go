// Package add реализует HTTP-обработчик добавления позиции в корзину.
// Повторное добавление позиции с тем же названием увеличивает её количество.
package add

import (
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
)

type Handler struct {
	log      *slog.Logger
	cart     Cart
	validate *validator.Validate
}

type Cart interface {
	AddItem(name string, unitPrice float64) models.CartItem
}

func New(log *slog.Logger, cart Cart) *Handler {
	return &Handler{
		log:      log,
		cart:     cart,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить позицию в корзину
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param request body models.AddCartItemRequest true "Позиция"
// @Success 201 {object} models.CartItem
// @Failure 400 {object} response.ErrorResponse
// @Router /cart/items [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.add"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AddCartItemRequest
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

	item := h.cart.AddItem(req.Name, req.Price)
	log.Info("item added to cart", slog.String("id", item.ID), slog.Int("quantity", item.Quantity))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}
