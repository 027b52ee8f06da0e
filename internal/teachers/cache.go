package teachers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listCacheKey      = "teachers:list"
	teacherCachePrefix = "teachers:id:"
)

// Cache wraps Redis based caching of teacher reference data. Teachers change
// rarely, so a plain TTL without invalidation is enough. All methods are
// best effort: a nil cache or an unreachable Redis degrades to a miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// List returns the cached teacher list when present.
func (c *Cache) List(ctx context.Context) ([]Teacher, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var teachers []Teacher
	if err := json.Unmarshal(payload, &teachers); err != nil {
		return nil, false
	}
	return teachers, true
}

// StoreList caches the teacher list.
func (c *Cache) StoreList(ctx context.Context, teachers []Teacher) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(teachers)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, listCacheKey, payload, c.ttl).Err()
}

// Teacher returns a cached teacher when present.
func (c *Cache) Teacher(ctx context.Context, id int64) (*Teacher, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, teacherKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var teacher Teacher
	if err := json.Unmarshal(payload, &teacher); err != nil {
		return nil, false
	}
	return &teacher, true
}

// StoreTeacher caches a single teacher.
func (c *Cache) StoreTeacher(ctx context.Context, teacher *Teacher) {
	if c == nil || c.client == nil || teacher == nil {
		return
	}
	payload, err := json.Marshal(teacher)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, teacherKey(teacher.ID), payload, c.ttl).Err()
}

func teacherKey(id int64) string {
	return fmt.Sprintf("%s%d", teacherCachePrefix, id)
}
