package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultMaxRetries = 10

// RedisStore keeps each document as a plain string value.
type RedisStore struct {
	client     *redis.Client
	maxRetries int
	onConflict func()
}

type RedisOption func(*RedisStore)

// WithMaxRetries bounds how often Update re-runs after losing a WATCH race.
func WithMaxRetries(n int) RedisOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithConflictHook is called each time an Update attempt is aborted.
func WithConflictHook(fn func()) RedisOption {
	return func(s *RedisStore) {
		s.onConflict = fn
	}
}

// DialRedis connects to redisURL and checks the connection. A non-empty token
// overrides any password in the URL.
func DialRedis(ctx context.Context, redisURL, token string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if token != "" {
		opts.Password = token
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:     client,
		maxRetries: defaultMaxRetries,
		onConflict: func() {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return body, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, body []byte) error {
	if err := s.client.Set(ctx, key, body, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Update watches keys, reads them, and commits fn's writes in MULTI/EXEC.
// A commit that lost the race is retried from a fresh read.
func (s *RedisStore) Update(ctx context.Context, keys []string, fn UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		values, err := tx.MGet(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("mget: %w", err)
		}

		docs := make(map[string][]byte, len(keys))
		for i, key := range keys {
			if str, ok := values[i].(string); ok {
				docs[key] = []byte(str)
			} else {
				docs[key] = nil
			}
		}

		writes, err := fn(docs)
		if err != nil {
			return err
		}
		if len(writes) == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for key, body := range writes {
				pipe.Set(ctx, key, body, 0)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		s.onConflict()
	}
	return ErrConflict
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
