package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const bookingStatusTTL = 5 * time.Minute

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

func bookingStatusKey(bookingID uint) string {
	return fmt.Sprintf("booking:status:%d", bookingID)
}

// CacheBookingStatus stores the denormalized by-id projection so polling
// clients don't hit the three-way join on every request.
func CacheBookingStatus(ctx context.Context, bookingID uint, payload interface{}) error {
	if RedisClient == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, bookingStatusKey(bookingID), data, bookingStatusTTL).Err()
}

// GetCachedBookingStatus returns the cached projection, or nil on miss.
func GetCachedBookingStatus(ctx context.Context, bookingID uint) (map[string]interface{}, error) {
	if RedisClient == nil {
		return nil, nil
	}

	data, err := RedisClient.Get(ctx, bookingStatusKey(bookingID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// InvalidateBookingStatus drops the cached projection after any mutation.
func InvalidateBookingStatus(ctx context.Context, bookingID uint) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Del(ctx, bookingStatusKey(bookingID)).Err()
}
