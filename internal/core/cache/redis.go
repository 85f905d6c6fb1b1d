package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a read-through Redis cache. A nil *Cache disables caching and
// every lookup goes straight to the loader.
type Cache struct {
	RDB    *redis.Client
	prefix string
	sf     singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewWithClient(rdb *redis.Client) *Cache {
	return &Cache{RDB: rdb, prefix: "raluma:"}
}

func (c *Cache) key(k string) string { return c.prefix + k }

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	k := c.key(key)
	if b, err := c.RDB.Get(ctx, k).Bytes(); err == nil {
		return b, nil
	}
	// concurrent misses on the same key share one load
	v, err, _ := c.sf.Do(k, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, k, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Del drops keys; Redis errors are ignored since entries expire anyway.
func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	_ = c.RDB.Del(ctx, full...).Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.RDB.Close()
}
