package remove

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Handler struct {
	log  *slog.Logger
	cart Cart
}

type Cart interface {
	RemoveItem(id string) bool
}

func New(log *slog.Logger, cart Cart) *Handler {
	return &Handler{
		log:  log,
		cart: cart,
	}
}

// ServeHTTP godoc
// @Summary Удалить позицию из корзины
// @Description Отсутствующая позиция не считается ошибкой.
// @Tags Cart
// @Param id path string true "ID позиции"
// @Success 204
// @Router /cart/items/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	removed := h.cart.RemoveItem(id)
	log.Info("remove cart item", slog.String("id", id), slog.Bool("removed", removed))

	render.NoContent(w, r)
}
