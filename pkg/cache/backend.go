package cache

import "context"

// Backend is the key-value contract the cache needs: plain string values plus
// string sets, in the manner of Redis.
type Backend interface {
	// Get returns the value at key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// Del removes values and sets stored at the given keys.
	Del(ctx context.Context, keys ...string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}
