package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis builds a Redis client from REDIS_URL. Redis is optional
// here (it only backs the catalog cache), so an unset URL or a failed
// ping returns nil instead of an error.
func ConnectRedis() *redis.Client {
	raw := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if raw == "" {
		return nil
	}

	opts, err := redis.ParseURL(raw)
	if err != nil {
		log.Printf("warning: invalid REDIS_URL, catalog cache disabled: %v", err)
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("warning: redis unreachable, catalog cache disabled: %v", err)
		_ = client.Close()
		return nil
	}

	log.Println("Redis connection established")
	return client
}
