// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"cibnlibrary/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient backs the CMS page cache.
	CacheClient *redis.Client
	// SessionClient is the dedicated client for session records.
	SessionClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func pingOrDie(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitCache initializes the Redis client used for CMS page caching.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	pingOrDie(CacheClient, "Cache")
}

// GetCacheClient returns the CMS cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitSessionCache initializes the Redis client used for session records.
func InitSessionCache() {
	SessionClient = newRedisClient(config.AppConfig.RedisSessionDB)
	pingOrDie(SessionClient, "Sessions")
}

// GetSessionCacheClient returns the Redis client for session records.
func GetSessionCacheClient() *redis.Client {
	if SessionClient == nil {
		InitSessionCache()
	}
	return SessionClient
}

// RedisClients returns every initialized client, for health checks.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{CacheClient, SessionClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
