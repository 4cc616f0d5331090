package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zapshift/zapshift-backend/internal/models"
)

var RedisClient *redis.Client

const trackingCacheTTL = 5 * time.Minute

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
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// CacheTrackedParcel stores a parcel snapshot under its tracking id
func CacheTrackedParcel(ctx context.Context, trackingID string, parcel *models.Parcel) error {
	data, err := json.Marshal(parcel)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("parcel:tracking:%s", trackingID)
	return RedisClient.Set(ctx, key, data, trackingCacheTTL).Err()
}

// GetTrackedParcel retrieves a cached parcel snapshot by tracking id
func GetTrackedParcel(ctx context.Context, trackingID string) (*models.Parcel, error) {
	key := fmt.Sprintf("parcel:tracking:%s", trackingID)
	data, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var parcel models.Parcel
	if err := json.Unmarshal([]byte(data), &parcel); err != nil {
		return nil, err
	}

	return &parcel, nil
}

// InvalidateTrackedParcel drops the cached snapshot after a state change
func InvalidateTrackedParcel(ctx context.Context, trackingID string) error {
	if trackingID == "" {
		return nil
	}
	key := fmt.Sprintf("parcel:tracking:%s", trackingID)
	return RedisClient.Del(ctx, key).Err()
}
