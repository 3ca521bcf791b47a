// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"reifenmarkt/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (search results, sessions).
	CacheClient *redis.Client
	// GeoCacheClient is the dedicated client for geocoding lookups.
	GeoCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitGeoCache initializes the Redis client for geocoding caching (using DB from AppConfig).
func InitGeoCache() {
	GeoCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisGeoDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := GeoCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Geo Cache): %v", err)
	}
}

// GetGeoCacheClient returns the Redis client for geocoding caching.
func GetGeoCacheClient() *redis.Client {
	if GeoCacheClient == nil {
		InitGeoCache()
	}
	return GeoCacheClient
}
