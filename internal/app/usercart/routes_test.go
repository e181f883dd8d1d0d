package usercart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/usercart/internal/cache"
	"github.com/magabrotheeeer/usercart/internal/lib/sl"
	"github.com/magabrotheeeer/usercart/internal/metrics"
	"github.com/magabrotheeeer/usercart/internal/models"
	cartservice "github.com/magabrotheeeer/usercart/internal/services/cart"
	userservice "github.com/magabrotheeeer/usercart/internal/services/users"
	"github.com/magabrotheeeer/usercart/internal/storage/memory"
)

func newTestServer(t *testing.T, opts userservice.Options) *httptest.Server {
	t.Helper()

	store := memory.New()
	svc := userservice.New(store, store, cache.Noop{}, sl.Discard(), opts)
	require.NoError(t, svc.SeedDemoData(context.Background()))

	router := chi.NewRouter()
	RegisterRoutes(router, sl.Discard(), svc, cartservice.New(cartservice.DefaultTaxRate), metrics.New("usercart"))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestUsersFlow(t *testing.T) {
	srv := newTestServer(t, userservice.Options{})

	resp := do(t, srv, http.MethodPost, "/users", map[string]string{
		"name": "Jo", "email": "a@b.com", "password": "123456",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[map[string]any](t, resp)
	assert.NotContains(t, created, "passwordHash")
	assert.NotContains(t, created, "salt")
	assert.Equal(t, true, created["isActive"])
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	resp = do(t, srv, http.MethodPost, "/users", map[string]string{
		"name": "Jo", "email": "A@B.com", "password": "123456",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/users", map[string]string{
		"name": "J", "email": "c@d.com", "password": "123456",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	all := decode[[]models.UserResponse](t, resp)
	assert.Len(t, all, 3)

	resp = do(t, srv, http.MethodGet, "/users/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@b.com", decode[models.UserResponse](t, resp).Email)

	resp = do(t, srv, http.MethodDelete, "/users/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/users/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/users/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/users", map[string]string{
		"name": "Jo", "email": "a@b.com", "password": "123456",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestUsersFlow_IdempotentRemove(t *testing.T) {
	srv := newTestServer(t, userservice.Options{IdempotentRemove: true})

	resp := do(t, srv, http.MethodDelete, "/users/2", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/users/2", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/users/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserPosts(t *testing.T) {
	srv := newTestServer(t, userservice.Options{})

	resp := do(t, srv, http.MethodGet, "/users/1/posts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[models.UserWithPosts](t, resp)
	assert.Equal(t, "John Doe", got.Name)
	assert.Len(t, got.Posts, 2)

	resp = do(t, srv, http.MethodGet, "/users/2/posts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[models.UserWithPosts](t, resp).Posts)

	resp = do(t, srv, http.MethodGet, "/users/missing/posts", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/users//posts", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Error", decode[map[string]any](t, resp)["status"])
}

func TestUserIDWithExtension(t *testing.T) {
	srv := newTestServer(t, userservice.Options{})

	resp := do(t, srv, http.MethodGet, "/users/1.json", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/users/1.json", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/users/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[models.UserResponse](t, resp).IsActive)
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t, userservice.Options{})

	resp := do(t, srv, http.MethodPost, "/cart/items", map[string]any{"name": "Book", "price": 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	book := decode[models.CartItem](t, resp)

	do(t, srv, http.MethodPost, "/cart/items", map[string]any{"name": "Book", "price": 10})
	do(t, srv, http.MethodPost, "/cart/items", map[string]any{"name": "Pen", "price": 5})

	resp = do(t, srv, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[models.CartSummary](t, resp)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, 2, summary.Items[0].Quantity)
	assert.InDelta(t, 25.0, summary.Subtotal, 1e-9)
	assert.InDelta(t, 26.75, summary.Total, 1e-9)

	resp = do(t, srv, http.MethodDelete, "/cart/items/"+book.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/cart", nil)
	summary = decode[models.CartSummary](t, resp)
	assert.InDelta(t, 5.0, summary.Subtotal, 1e-9)

	resp = do(t, srv, http.MethodDelete, "/cart", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/cart", nil)
	summary = decode[models.CartSummary](t, resp)
	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.Total)
}

func TestServiceEndpoints(t *testing.T) {
	srv := newTestServer(t, userservice.Options{})

	resp := do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	do(t, srv, http.MethodGet, "/users/1", nil)

	resp = do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `route="/users/{id}"`)

	resp = do(t, srv, http.MethodGet, "/docs/doc.json", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
