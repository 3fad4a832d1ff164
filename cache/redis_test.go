package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/hotel-reservation/services"
)

var _ services.IdempotencyStore = (*RedisIdempotencyStore)(nil)

func TestIdempotencyStoreDefaults(t *testing.T) {
	client := New("127.0.0.1:6379")
	defer client.Close()

	store := NewIdempotencyStore(client)
	assert.Equal(t, TTLIdempotency, store.TTL)
	assert.Equal(t, 24*time.Hour, store.TTL)
	assert.Equal(t, "127.0.0.1:6379", client.Options().Addr)
}

func TestIdempotencyStoreUnreachable(t *testing.T) {
	// Port 1 is never a redis server; every call must fail fast instead of hanging.
	client := New("127.0.0.1:1")
	defer client.Close()
	store := NewIdempotencyStore(client)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	assert.Error(t, store.Ping(ctx))
	_, found, err := store.Lookup(ctx, "k")
	assert.Error(t, err)
	assert.False(t, found)
	assert.Error(t, store.Remember(ctx, "k", 1))
	assert.Error(t, store.Replace(ctx, "k", 1))
}
