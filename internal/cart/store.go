package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/zestraw/storefront-backend/pkg/logger"
)

// Store persists one cart blob per owner.
type Store interface {
	Load(ctx context.Context, owner string) ([]LineItem, error)
	Save(ctx context.Context, owner string, items []LineItem) error
	Drop(ctx context.Context, owner string) error
}

type cartKV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type cartKeyer interface {
	CartKey(owner string) string
}

type redisStore struct {
	kv    cartKV
	keyer cartKeyer
	logg  *logger.Logger
	ttl   time.Duration
}

// NewRedisStore builds the Redis-backed cart store. A zero TTL keeps carts
// until they are explicitly cleared.
func NewRedisStore(kv cartKV, keyer cartKeyer, logg *logger.Logger, ttl time.Duration) (Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis kv is required")
	}
	if keyer == nil {
		return nil, fmt.Errorf("cart keyer is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &redisStore{kv: kv, keyer: keyer, logg: logg, ttl: ttl}, nil
}

func (s *redisStore) Load(ctx context.Context, owner string) ([]LineItem, error) {
	key := s.keyer.CartKey(owner)
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading cart %q: %w", key, err)
	}

	items := decodeItems([]byte(raw))
	if items == nil && raw != "" && raw != "[]" && raw != "null" {
		s.logg.Warn(s.logg.WithCartKey(ctx, key), "discarding malformed cart blob")
	}
	return items, nil
}

func (s *redisStore) Save(ctx context.Context, owner string, items []LineItem) error {
	data, err := encodeItems(items)
	if err != nil {
		return err
	}
	key := s.keyer.CartKey(owner)
	if err := s.kv.Set(ctx, key, string(data), s.ttl); err != nil {
		return fmt.Errorf("saving cart %q: %w", key, err)
	}
	return nil
}

func (s *redisStore) Drop(ctx context.Context, owner string) error {
	key := s.keyer.CartKey(owner)
	if err := s.kv.Del(ctx, key); err != nil {
		return fmt.Errorf("dropping cart %q: %w", key, err)
	}
	return nil
}
