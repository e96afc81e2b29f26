package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	// TTL de cada clave; 0 = sin expiración.
	TTL time.Duration
}

// SessionStore implementa sessionstore.Store sobre Redis.
// Las claves quedan como pawsense:<namespace>:<key>.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// Open conecta y verifica con PING (con reintentos).
func Open(ctx context.Context, opts Options) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	b := retry.WithMaxRetries(4, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	return NewSessionStore(client, opts.TTL), nil
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func storeKey(namespace, key string) string {
	return "pawsense:" + namespace + ":" + key
}

func (s *SessionStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	return s.client.Set(ctx, storeKey(namespace, key), value, s.ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, storeKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, namespace, key string) error {
	return s.client.Del(ctx, storeKey(namespace, key)).Err()
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}
