package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/blood_mobilization_system/internal/models"
)

const activeCatalogKey = "emergencies:active"

// RedisCatalogCache хранит каталог активных событий в Redis в виде JSON
type RedisCatalogCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisCatalogCache(redisClient *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// GetActiveEvents пытается получить каталог из Redis; промах - nil, nil
func (c *RedisCatalogCache) GetActiveEvents(ctx context.Context) ([]*models.EmergencyEvent, error) {
	val, err := c.redisClient.Get(ctx, activeCatalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active catalog from cache: %w", err)
	}
	return decodeCatalog(val)
}

// SetActiveEvents сохраняет каталог в Redis
func (c *RedisCatalogCache) SetActiveEvents(ctx context.Context, events []*models.EmergencyEvent) error {
	val, err := encodeCatalog(events)
	if err != nil {
		return err
	}
	if err := c.redisClient.Set(ctx, activeCatalogKey, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set active catalog in cache: %w", err)
	}
	return nil
}

// InvalidateActiveEvents удаляет каталог из Redis кэша
func (c *RedisCatalogCache) InvalidateActiveEvents(ctx context.Context) error {
	if err := c.redisClient.Del(ctx, activeCatalogKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate active catalog cache: %w", err)
	}
	return nil
}

// пустой каталог кодируется как [], чтобы отличаться от промаха
func encodeCatalog(events []*models.EmergencyEvent) ([]byte, error) {
	if events == nil {
		events = []*models.EmergencyEvent{}
	}
	val, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal active catalog for cache: %w", err)
	}
	return val, nil
}

func decodeCatalog(val []byte) ([]*models.EmergencyEvent, error) {
	events := make([]*models.EmergencyEvent, 0)
	if err := json.Unmarshal(val, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active catalog from cache: %w", err)
	}
	if events == nil {
		events = []*models.EmergencyEvent{}
	}
	return events, nil
}

// NopCatalogCache используется, когда Redis отключен: всегда промах
type NopCatalogCache struct{}

func (NopCatalogCache) GetActiveEvents(context.Context) ([]*models.EmergencyEvent, error) {
	return nil, nil
}

func (NopCatalogCache) SetActiveEvents(context.Context, []*models.EmergencyEvent) error {
	return nil
}

func (NopCatalogCache) InvalidateActiveEvents(context.Context) error {
	return nil
}
