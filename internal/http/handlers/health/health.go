package health

import (
	"net/http"

	"github.com/go-chi/render"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка доступности
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
