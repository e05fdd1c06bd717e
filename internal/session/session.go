// Package session builds the server-side session store of the notes app.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"pdfdesk/internal/config"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// NewStore returns a session store for the configured backend. The returned
// storage is nil for the in-memory backend; otherwise the caller closes it.
func NewStore(ctx context.Context, c config.SessionConfig) (*fibersession.Store, fiber.Storage, error) {
	var storage fiber.Storage

	switch c.Backend {
	case "", BackendMemory:
	case BackendRedis:
		client, err := NewRedisClient(ctx, c.Redis)
		if err != nil {
			return nil, nil, err
		}
		storage = NewRedisStorage(client, "")
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", c.Backend)
	}

	return fibersession.New(StoreConfig(c, storage)), storage, nil
}

// StoreConfig maps SessionConfig onto fiber's session configuration.
func StoreConfig(c config.SessionConfig, storage fiber.Storage) fibersession.Config {
	ttl := time.Duration(c.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	name := c.CookieName
	if name == "" {
		name = "pdfdesk_session"
	}

	return fibersession.Config{
		Storage:        storage,
		Expiration:     ttl,
		KeyLookup:      "cookie:" + name,
		CookieSecure:   c.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
}
