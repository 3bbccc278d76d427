package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bazaar/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps redis with JSON marshalling. A nil *CacheService is a
// valid no-op: reads miss and writes are dropped.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if s == nil || s.client == nil {
		return false, nil
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Category post listings are the hottest read path, so they get their own
// helpers with a short TTL.
func (s *CacheService) CacheCategoryPosts(ctx context.Context, categoryID string, posts []models.Post) error {
	key := s.GenerateKey("posts", "category", categoryID)
	return s.SetWithTTL(ctx, key, posts, 5*time.Minute)
}

func (s *CacheService) GetCategoryPosts(ctx context.Context, categoryID string) ([]models.Post, bool, error) {
	var posts []models.Post
	key := s.GenerateKey("posts", "category", categoryID)
	found, err := s.Get(ctx, key, &posts)
	if err != nil || !found {
		return nil, false, err
	}
	return posts, true, nil
}

func (s *CacheService) InvalidateCategoryPosts(ctx context.Context, categoryID string) error {
	return s.Delete(ctx, s.GenerateKey("posts", "category", categoryID))
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

// HealthCheck pings redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}
