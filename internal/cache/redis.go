package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/redis/go-redis/v9"
)

// Redis is a ForecastCache shared between server instances
type Redis struct {
	client *redis.Client
}

// NewRedis connects to addr and verifies the connection
func NewRedis(ctx context.Context, addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &Redis{client: client}, nil
}

// Get loads and decodes a cached forecast
func (r *Redis) Get(ctx context.Context, key string) (*models.Forecast, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var fc models.Forecast
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return &fc, true, nil
}

// Set encodes and stores a forecast with a TTL
func (r *Redis) Set(ctx context.Context, key string, fc *models.Forecast, ttl time.Duration) error {
	raw, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close closes the redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}
