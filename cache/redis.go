package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// idem:reservation:create:{key} -> reservation id
	KeyIdemReservationCreate = "idem:reservation:create:%s"

	TTLIdempotency = 24 * time.Hour
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// RedisIdempotencyStore remembers which reservation an Idempotency-Key produced.
type RedisIdempotencyStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{Client: client, TTL: TTLIdempotency}
}

func (s *RedisIdempotencyStore) Lookup(ctx context.Context, key string) (uint, bool, error) {
	v, err := s.Client.Get(ctx, fmt.Sprintf(KeyIdemReservationCreate, key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt idempotency entry %q: %w", key, err)
	}
	return uint(id), true, nil
}

// Remember stores the mapping only if the key is unused, so the first reservation wins.
func (s *RedisIdempotencyStore) Remember(ctx context.Context, key string, reservationID uint) error {
	return s.Client.SetNX(ctx, fmt.Sprintf(KeyIdemReservationCreate, key), reservationID, s.TTL).Err()
}

// Replace points the key at a new reservation, used when the old one no longer exists.
func (s *RedisIdempotencyStore) Replace(ctx context.Context, key string, reservationID uint) error {
	return s.Client.Set(ctx, fmt.Sprintf(KeyIdemReservationCreate, key), reservationID, s.TTL).Err()
}

func (s *RedisIdempotencyStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
