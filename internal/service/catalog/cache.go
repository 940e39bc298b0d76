package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reagan13/backend-itservice/internal/domain"
)

// Cache is an optional Redis read-through layer over product gets. A nil
// client disables it; Redis failures degrade to the database silently.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) get(ctx context.Context, id int64) (*domain.Product, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.client.Get(ctx, productKey(id)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Printf("catalog cache: get id=%d error=%v", id, err)
		}
		return nil, false
	}
	var p domain.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		c.logger.Printf("catalog cache: decode id=%d error=%v", id, err)
		return nil, false
	}
	return &p, true
}

func (c *Cache) set(ctx context.Context, p *domain.Product) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKey(p.ID), data, c.ttl).Err(); err != nil {
		c.logger.Printf("catalog cache: set id=%d error=%v", p.ID, err)
	}
}

func (c *Cache) invalidate(ctx context.Context, id int64) {
	if !c.enabled() {
		return
	}
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		c.logger.Printf("catalog cache: invalidate id=%d error=%v", id, err)
	}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}
