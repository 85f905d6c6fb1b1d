package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetOrLoadJSON caches load's result as JSON. A nil result is cached as
// "null" and comes back as nil. An entry that no longer decodes into T is
// dropped and reloaded.
func GetOrLoadJSON[T any](c *Cache, ctx context.Context, key string, ttl time.Duration,
	load func(ctx context.Context) (*T, error)) (*T, error) {
	if c == nil {
		return load(ctx)
	}
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	out := new(T)
	if err := json.Unmarshal(b, out); err != nil {
		c.Del(ctx, key)
		return load(ctx)
	}
	return out, nil
}
