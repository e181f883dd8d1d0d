package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/usercart/internal/config"
	"github.com/magabrotheeeer/usercart/internal/models"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)

	expected := models.UserResponse{
		ID:        "1",
		Name:      "John Doe",
		Email:     "john@example.com",
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		IsActive:  true,
	}
	err := cache.Set("user:1", expected, time.Minute)
	require.NoError(t, err)

	var actual models.UserResponse
	found, err := cache.Get("user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Email, actual.Email)
	assert.True(t, expected.CreatedAt.Equal(actual.CreatedAt))
}

func TestSet_Expiration(t *testing.T) {
	cache, mr := setupTestCache(t)

	require.NoError(t, cache.Set("key", "value", time.Minute))
	mr.FastForward(2 * time.Minute)

	var out string
	found, err := cache.Get("key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out models.UserResponse
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)

	err := cache.Set("key", "value", time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate("key")
	require.NoError(t, err)

	var out string
	found, err := cache.Get("key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, _ := setupTestCache(t)

	err := cache.Db.Set(context.Background(), "bad", []byte("not-json"), time.Minute).Err()
	require.NoError(t, err)

	var out models.UserResponse
	found, err := cache.Get("bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestGet_ServerDown(t *testing.T) {
	cache, mr := setupTestCache(t)
	mr.Close()

	var out string
	found, err := cache.Get("key", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestInitServerInvalidAddr(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	}

	cache, err := InitServer(context.Background(), cfg)
	assert.Nil(t, cache)
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c Noop

	require.NoError(t, c.Set("key", "value", time.Minute))

	var out string
	found, err := c.Get("key", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Invalidate("key"))
}
