package list

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/usercart/internal/models"
)

type Handler struct {
	cart Cart
}

type Cart interface {
	Summary() models.CartSummary
}

func New(cart Cart) *Handler {
	return &Handler{cart: cart}
}

// ServeHTTP godoc
// @Summary Содержимое корзины
// @Description Позиции, подытог и итог с налогом.
// @Tags Cart
// @Produce  json
// @Success 200 {object} models.CartSummary
// @Router /cart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.cart.Summary())
}
