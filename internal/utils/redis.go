package utils

import (
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// OpenRedis opens a client for the given address. Kept separate from the
// env-driven constructor so tests and CLI tools can inject an address directly.
func OpenRedis(addr, pass string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass})
}

// OpenRedisFromEnv opens a Redis client from REDIS_HOST/REDIS_PORT/REDIS_PASS,
// with optional REDIS_DB selection. Returns nil when REDIS_HOST is unset so the
// boundary cache degrades to its Postgres tier without a Redis deployment.
func OpenRedisFromEnv() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			db = n
		}
	}
	return redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASS"),
		DB:       db,
	})
}
