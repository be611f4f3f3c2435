package redis

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/gmit-kupang/sensus-jemaat/config"
)

// NewRedisClient membuat klien Redis dari konfigurasi.
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// Ping menguji koneksi Redis.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
