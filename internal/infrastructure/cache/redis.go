package cache

import (
	"context"
	"fmt"
	"time"

	"timesheet-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Open connects to the redis named by REDIS_ADDR / REDIS_DB.
func Open(c *config.Config) (*redis.Client, error) {
	return OpenRedis(c.RedisAddr, c.RedisDB)
}

// OpenRedis dials and pings; the client is closed again when the ping fails.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: pingTimeout,
	})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return r, nil
}
