package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoOrder is returned when no seeding order is cached for a competition.
var ErrNoOrder = errors.New("no seeding order cached")

// SeedingOrderTTL matches the lifetime the admin UI expects between saving a
// seeding and generating the schedule.
const SeedingOrderTTL = time.Hour

// SeedingCache stores the admin-chosen team order per competition until the
// schedule is generated from it.
type SeedingCache interface {
	SaveOrder(ctx context.Context, competitionID int, orderedIDs []int) error
	GetOrder(ctx context.Context, competitionID int) ([]int, error)
	ClearOrder(ctx context.Context, competitionID int) error
}

func seedingKey(competitionID int) string {
	return fmt.Sprintf("seeding_order_%d", competitionID)
}

type redisSeedingCache struct {
	client *redis.Client
}

// NewRedisSeedingCache connects to Redis and verifies the connection with a
// short timeout so a dead cache is detected at startup, not on first use.
func NewRedisSeedingCache(redisURL string) (SeedingCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisSeedingCache{client: client}, nil
}

func (c *redisSeedingCache) SaveOrder(ctx context.Context, competitionID int, orderedIDs []int) error {
	payload, err := json.Marshal(orderedIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal seeding order: %w", err)
	}
	if err := c.client.Set(ctx, seedingKey(competitionID), payload, SeedingOrderTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache seeding order for competition %d: %w", competitionID, err)
	}
	return nil
}

func (c *redisSeedingCache) GetOrder(ctx context.Context, competitionID int) ([]int, error) {
	payload, err := c.client.Get(ctx, seedingKey(competitionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoOrder
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read seeding order for competition %d: %w", competitionID, err)
	}

	var ids []int
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode cached seeding order for competition %d: %w", competitionID, err)
	}
	return ids, nil
}

func (c *redisSeedingCache) ClearOrder(ctx context.Context, competitionID int) error {
	return c.client.Del(ctx, seedingKey(competitionID)).Err()
}

type memoryEntry struct {
	ids     []int
	expires time.Time
}

// memorySeedingCache is the degraded mode used when Redis is unavailable.
// Orders survive only within the process, which is enough for the
// save-seeding-then-generate flow on a single instance.
type memorySeedingCache struct {
	mu      sync.Mutex
	entries map[int]memoryEntry
}

func NewMemorySeedingCache() SeedingCache {
	return &memorySeedingCache{entries: make(map[int]memoryEntry)}
}

func (c *memorySeedingCache) SaveOrder(_ context.Context, competitionID int, orderedIDs []int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]int, len(orderedIDs))
	copy(ids, orderedIDs)
	c.entries[competitionID] = memoryEntry{ids: ids, expires: time.Now().Add(SeedingOrderTTL)}
	return nil
}

func (c *memorySeedingCache) GetOrder(_ context.Context, competitionID int) ([]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[competitionID]
	if !ok || time.Now().After(entry.expires) {
		delete(c.entries, competitionID)
		return nil, ErrNoOrder
	}
	ids := make([]int, len(entry.ids))
	copy(ids, entry.ids)
	return ids, nil
}

func (c *memorySeedingCache) ClearOrder(_ context.Context, competitionID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, competitionID)
	return nil
}
