package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type Service struct {
	client *redis.Client
}

// NewRedisService returns nil when Redis is unreachable; callers treat a nil
// cache as disabled rather than failing startup.
func NewRedisService(config RedisConfig) *Service {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		return nil
	}

	log.Printf("✅ Connected to Redis at %s:%s", config.Host, config.Port)
	return &Service{client: client}
}

func (r *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return r.client.Set(ctx, key, jsonValue, ttl).Err()
}

func (r *Service) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get value: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (r *Service) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *Service) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Service) CacheReport(ctx context.Context, kind, userID, periodKey string, report interface{}, ttl time.Duration) error {
	return r.Set(ctx, reportKey(kind, userID, periodKey), report, ttl)
}

func (r *Service) GetReport(ctx context.Context, kind, userID, periodKey string, dest interface{}) error {
	return r.Get(ctx, reportKey(kind, userID, periodKey), dest)
}

// InvalidateUser drops every cached report for a user, used after ingestion
// so fresh visits show up in the next insight request.
func (r *Service) InvalidateUser(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("insights:*:%s:*", userID)
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *Service) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Service) Close() error {
	return r.client.Close()
}

func reportKey(kind, userID, periodKey string) string {
	return fmt.Sprintf("insights:%s:%s:%s", kind, userID, periodKey)
}
