// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"rentwheels/config"
)

var (
	// QuoteCacheClient holds issued quotes for their TTL.
	QuoteCacheClient *redis.Client
	// IdemCacheClient records confirmation idempotency keys.
	IdemCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (db %d): %v", db, err)
	}
	return client
}

// InitRedis initializes every Redis client the engine uses.
func InitRedis() {
	QuoteCacheClient = newRedisClient(config.AppConfig.RedisQuoteDB)
	IdemCacheClient = newRedisClient(config.AppConfig.RedisIdemDB)
}

// GetQuoteCacheClient returns the quote cache client.
func GetQuoteCacheClient() *redis.Client {
	if QuoteCacheClient == nil {
		QuoteCacheClient = newRedisClient(config.AppConfig.RedisQuoteDB)
	}
	return QuoteCacheClient
}

// GetIdemCacheClient returns the idempotency cache client.
func GetIdemCacheClient() *redis.Client {
	if IdemCacheClient == nil {
		IdemCacheClient = newRedisClient(config.AppConfig.RedisIdemDB)
	}
	return IdemCacheClient
}
