package cache

import (
	"context"
	"encoding/json"
	"time"
)

// ReadThrough JSON 读穿透；load 返回 nil 表示确实不存在，照样缓存住防穿透
func ReadThrough[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	raw, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	switch {
	case err != nil:
		return nil, err
	case string(raw) == "null":
		return nil, nil
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}
