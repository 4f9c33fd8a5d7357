package redis

import (
	"context"
	"log"
	"time"

	"travel-agency-api/internal/config"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()
var RedisClient *redis.Client

// sessionPrefix namespaces session keys away from anything else stored
// in the same redis instance.
const sessionPrefix = "session:"

// InitRedis connects the session store. The error is fatal in production
// since session revocation depends on redis; development may run without
// it, falling back to JWT-only auth.
func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisAddress,
	})
	_, err := RedisClient.Ping(Ctx).Result()
	if err != nil {
		RedisClient = nil
		return err
	}

	log.Println("Redis connected successfully.")
	return nil
}

// StoreSession records an issued token so the auth middleware can treat
// redis as the source of truth for active sessions. Logout removes the
// key; expiry matches the token lifetime.
func StoreSession(token, userID string, ttl time.Duration) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Set(Ctx, sessionPrefix+token, userID, ttl).Err()
}

// SessionExists reports whether a token still names an active session.
// A nil client only happens in development (production refuses to start
// without redis), where the JWT signature check alone has to do.
func SessionExists(token string) bool {
	if RedisClient == nil {
		return true
	}
	exists, err := RedisClient.Exists(Ctx, sessionPrefix+token).Result()
	if err != nil {
		log.Printf("redis: session lookup failed: %v", err)
		return false
	}
	return exists > 0
}

// DeleteSession invalidates a token immediately.
func DeleteSession(token string) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Del(Ctx, sessionPrefix+token).Err()
}
