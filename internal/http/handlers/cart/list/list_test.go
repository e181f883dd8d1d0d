package list

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/usercart/internal/services/cart"
)

func TestListHandler(t *testing.T) {
	c := cart.New(cart.DefaultTaxRate)
	h := New(c)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"subtotal":0,"total":0}`, w.Body.String())

	c.AddItem("Book", 10)
	c.AddItem("Pen", 5)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subtotal":15`)
	assert.Contains(t, w.Body.String(), `"total":16.05`)
	assert.Contains(t, w.Body.String(), `"name":"Book"`)
}
