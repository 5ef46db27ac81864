package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

const DefaultRedisKey = "inventory:items"

// RedisItemStore keeps the collection as one JSON array under a single key.
type RedisItemStore struct {
	rdb *redis.Client
	key string
}

func NewRedisItemStore(rdb *redis.Client, key string) *RedisItemStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisItemStore{rdb: rdb, key: key}
}

func (s *RedisItemStore) Load(ctx context.Context) ([]models.InventoryItem, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.InventoryItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	items := []models.InventoryItem{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return items, nil
}

func (s *RedisItemStore) Save(ctx context.Context, items []models.InventoryItem) error {
	if items == nil {
		items = []models.InventoryItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
