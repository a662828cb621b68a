package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"daily-tasks/internal/tracker"
)

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// RedisKV stores tracker state as plain redis strings under <prefix>:<namespace>:<key>.
type RedisKV struct {
	client *redis.Client
	prefix string
}

func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	if prefix == "" {
		prefix = "dailytasks"
	}
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) ForNamespace(namespace string) tracker.Store {
	return &redisNamespace{kv: r, namespace: namespace}
}

func (r *RedisKV) key(parts ...string) string {
	var sb strings.Builder
	sb.WriteString(r.prefix)
	for _, part := range parts {
		sb.WriteByte(':')
		sb.WriteString(part)
	}
	return sb.String()
}

type redisNamespace struct {
	kv        *RedisKV
	namespace string
}

func (s *redisNamespace) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.kv.client.Get(ctx, s.kv.key(s.namespace, key)).Bytes()
	switch {
	case err == nil:
		return v, true, nil
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
}

func (s *redisNamespace) Set(ctx context.Context, key string, value []byte) error {
	if err := s.kv.client.Set(ctx, s.kv.key(s.namespace, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *redisNamespace) Delete(ctx context.Context, key string) error {
	if err := s.kv.client.Del(ctx, s.kv.key(s.namespace, key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
