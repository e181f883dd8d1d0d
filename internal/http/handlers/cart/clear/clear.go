package clear

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Handler struct {
	log  *slog.Logger
	cart Cart
}

type Cart interface {
	Clear()
}

func New(log *slog.Logger, cart Cart) *Handler {
	return &Handler{
		log:  log,
		cart: cart,
	}
}

// ServeHTTP godoc
// @Summary Очистить корзину
// @Tags Cart
// @Success 204
// @Router /cart [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	h.log.Info("cart cleared",
		slog.String("op", "handlers.cart.clear"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	render.NoContent(w, r)
}
