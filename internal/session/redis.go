package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	redis "github.com/redis/go-redis/v9"

	"pdfdesk/internal/config"
)

// opTimeout bounds every Redis round trip made on behalf of a request.
const opTimeout = 3 * time.Second

// RedisStorage is a fiber.Storage backed by Redis. Keys are namespaced with a
// prefix so Reset only touches session data.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

var _ fiber.Storage = (*RedisStorage)(nil)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, c config.RedisConfig) (*redis.Client, error) {
	host := c.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := c.Port
	if port == 0 {
		port = 6379
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Username: c.Username,
		Password: c.Password,
		DB:       c.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewRedisStorage wraps an existing client. prefix defaults to "pdfdesk:session:".
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "pdfdesk:session:"
	}
	return &RedisStorage{client: client, prefix: prefix}
}

// Get returns nil, nil for a missing key, as fiber.Storage requires.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val. A zero exp keeps the key until deleted.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, val, exp).Err()
}

func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Reset removes every key under the prefix.
func (s *RedisStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
