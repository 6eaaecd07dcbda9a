package redis

import (
	"context"
	"time"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ServiceInterface interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	CacheReport(ctx context.Context, kind, userID, periodKey string, report interface{}, ttl time.Duration) error
	GetReport(ctx context.Context, kind, userID, periodKey string, dest interface{}) error
	InvalidateUser(ctx context.Context, userID string) error

	Health(ctx context.Context) error
	Close() error
}
