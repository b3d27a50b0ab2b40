package question

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mentallify/assistant/internal/symptom"
)

const (
	defaultCacheTTL = 5 * time.Minute
	bankCacheKey    = "symptombank:v1"
)

// Cache keeps the resolved symptom bank in Redis so replicas skip the database.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ BankCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) (*symptom.Bank, error) {
	data, err := c.client.Get(ctx, bankCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var bank symptom.Bank
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, err
	}
	return &bank, nil
}

func (c *Cache) Set(ctx context.Context, bank symptom.Bank) error {
	data, err := json.Marshal(bank)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bankCacheKey, data, c.ttl).Err()
}

// Invalidate drops the cached bank, used after reseeding.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, bankCacheKey).Err()
}
