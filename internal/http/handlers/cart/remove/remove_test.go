package remove

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/usercart/internal/lib/sl"
	"github.com/magabrotheeeer/usercart/internal/services/cart"
)

func TestRemoveHandler(t *testing.T) {
	c := cart.New(cart.DefaultTaxRate)
	book := c.AddItem("Book", 10)
	c.AddItem("Pen", 5)
	h := New(sl.Discard(), c)

	for _, id := range []string{book.ID, book.ID, "missing"} {
		req := httptest.NewRequest(http.MethodDelete, "/cart/items/"+id, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	items := c.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "Pen", items[0].Name)
}
