package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching assembled foods
type CacheRepository interface {
	Get(ctx context.Context, key string) (*Food, error)
	Set(ctx context.Context, key string, food *Food, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// USDAClient defines the interface for interacting with USDA FoodData Central API
type USDAClient interface {
	GetFood(ctx context.Context, fdcID string) (*SourceFood, error)
}

// RecordWriter serializes an ordered sequence of foods to a tabular sink
type RecordWriter interface {
	Write(ctx context.Context, foods []Food) error
}
