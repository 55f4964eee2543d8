package cache

import (
	"context"
	"errors"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var _ Backend = (*RedisBackend)(nil)

type RedisOptions struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisBackend stores values as Redis strings and sets as Redis sets.
type RedisBackend struct {
	client redis.UniversalClient
}

func NewRedisBackend(opts RedisOptions) *RedisBackend {
	host := opts.Host
	if host == "" {
		host = DefaultHost
	}
	port := opts.Port
	if port == 0 {
		port = DefaultPort
	}
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &RedisBackend{client: client}
}

// NewRedisBackendFromClient wraps an existing client. Close closes it.
func NewRedisBackendFromClient(client redis.UniversalClient) *RedisBackend {
	return &RedisBackend{client: client}
}

func (r *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisBackend) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisBackend) SAdd(ctx context.Context, key string, members ...string) error {
	return r.client.SAdd(ctx, key, toAny(members)...).Err()
}

func (r *RedisBackend) SRem(ctx context.Context, key string, members ...string) error {
	return r.client.SRem(ctx, key, toAny(members)...).Err()
}

func (r *RedisBackend) SMembers(ctx context.Context, key string) ([]string, error) {
	return r.client.SMembers(ctx, key).Result()
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}

func toAny(members []string) []any {
	out := make([]any, len(members))
	for i, m := range members {
		out[i] = m
	}
	return out
}
