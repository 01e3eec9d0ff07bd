package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a Redis client for the roster cache, or nil when
// addr is empty or the server is unreachable. Callers must treat a nil
// client as "caching disabled".
func ConnectRedis(addr string) *redis.Client {
	if addr == "" {
		slog.Warn("REDIS_ADDR not set, roster caching is disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Fail open: a missing cache only costs extra sheet reads.
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		slog.Error("Failed to connect to Redis, continuing without cache", "error", err)
		return nil
	}

	slog.Info("Connected to Redis", "addr", addr)
	return rdb
}
