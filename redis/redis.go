package redis

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the week-view cache. Redis is optional: when it is
// unreachable the portal serves every range query from Postgres.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	_, err := client.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Redis unavailable at %s, week cache disabled: %v", addr, err)
		return
	}
	Client = client
	log.Println("✅ Connected to Redis")
}
