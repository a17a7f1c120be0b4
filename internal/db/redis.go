package db

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/openstays/stay-booking/internal/config"
)

// NewRedis connects the session store backend. Sessions are load-bearing
// for every authenticated route, so a dead Redis is fatal at startup.
func NewRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	return client
}
