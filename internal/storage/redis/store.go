package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	lowimpl "github.com/redis/go-redis/v9"

	"github.com/hongminglow/ubu-lite/internal/storage"
)

var _ storage.KV = (*Store)(nil)

// Config selects the redis server holding session slots.
type Config struct {
	Addr     string
	Password string
	DB       int
	// TTL expires slots server side. Zero keeps them until logout.
	TTL time.Duration
}

// Store keeps session slots as plain redis strings.
type Store struct {
	internal *lowimpl.Client
	ttl      time.Duration
}

// New connects and pings the server.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client := lowimpl.NewClient(&lowimpl.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}
	return &Store{internal: client, ttl: cfg.TTL}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := storage.CheckKeys(key); err != nil {
		return "", false, err
	}
	val, err := s.internal.Get(ctx, key).Result()
	if errors.Is(err, lowimpl.Nil) {
		return "", false, nil // redis.Nil -> found: false, err: nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := storage.CheckKeys(key); err != nil {
		return err
	}
	return s.internal.Set(ctx, key, value, s.ttl).Err()
}

// Delete issues a single DEL so both slots disappear together.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if err := storage.CheckKeys(keys...); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.internal.Del(ctx, keys...).Err()
}

func (s *Store) Close() error {
	if s.internal == nil {
		return nil
	}
	return s.internal.Close()
}
