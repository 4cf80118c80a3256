package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"senior_living_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

const catalogKey = "community_catalog:active"

// CatalogCache holds a snapshot of the active community catalog.
type CatalogCache interface {
	Get(ctx context.Context) ([]model.Community, bool, error)
	Set(ctx context.Context, communities []model.Community) error
	Invalidate(ctx context.Context) error
	SetTTL(ttl time.Duration)
}

type catalogCache struct {
	client *redis.Client
	ttl    atomic.Int64
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) CatalogCache {
	c := &catalogCache{client: client}
	c.SetTTL(ttl)
	return c
}

// SetTTL applies to snapshots written after the call.
func (c *catalogCache) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	c.ttl.Store(int64(ttl))
}

func (c *catalogCache) Get(ctx context.Context) ([]model.Community, bool, error) {
	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cs []model.Community
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, false, err
	}
	return cs, true, nil
}

func (c *catalogCache) Set(ctx context.Context, communities []model.Community) error {
	data, err := json.Marshal(communities)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey, data, time.Duration(c.ttl.Load())).Err()
}

func (c *catalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
