package domain

import (
	"context"
	"time"
)

// Cache defines the caching operations the service layer depends on.
// Implementations translate their own miss sentinel to ErrCacheMiss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	HGet(ctx context.Context, key, field string) (string, error)
	HSet(ctx context.Context, key string, field string, value string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Ping(ctx context.Context) error
}
