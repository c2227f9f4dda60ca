package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/repertoire/contacts-api/internal/core/domain"
	"github.com/repertoire/contacts-api/internal/core/ports"
)

const defaultContactTTL = 5 * time.Minute

var _ ports.ContactCache = (*ContactCache)(nil)

// ContactCache stores the JSON-encoded contact list of each user together
// with the list version it was read under.
// Key format:
//
//	contacts:persons:<user_id>  list entry, expires after ttl
//	contacts:version:<user_id>  INCR'd on every invalidation
type ContactCache struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedList struct {
	Version int64           `json:"version"`
	Persons []domain.Person `json:"persons"`
}

// NewContactCache wraps client. A non-positive ttl falls back to five minutes.
func NewContactCache(client *redis.Client, ttl time.Duration) *ContactCache {
	if ttl <= 0 {
		ttl = defaultContactTTL
	}
	return &ContactCache{client: client, ttl: ttl}
}

// Get reads the list entry and the current version in one round trip. An
// entry written under an older version counts as a miss.
func (c *ContactCache) Get(ctx context.Context, userID int64) ([]domain.Person, int64, bool, error) {
	vals, err := c.client.MGet(ctx, c.listKey(userID), c.versionKey(userID)).Result()
	if err != nil {
		return nil, 0, false, fmt.Errorf("contact cache get: %w", err)
	}

	var version int64
	if raw, ok := vals[1].(string); ok {
		if version, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, 0, false, fmt.Errorf("contact cache version: %w", err)
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, version, false, nil
	}

	var entry cachedList
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, 0, false, fmt.Errorf("contact cache decode: %w", err)
	}
	if entry.Version != version {
		return nil, version, false, nil
	}
	if entry.Persons == nil {
		entry.Persons = []domain.Person{}
	}
	return entry.Persons, version, true, nil
}

func (c *ContactCache) Set(ctx context.Context, userID, version int64, persons []domain.Person) error {
	raw, err := json.Marshal(cachedList{Version: version, Persons: persons})
	if err != nil {
		return fmt.Errorf("contact cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("contact cache set: %w", err)
	}
	return nil
}

// Invalidate bumps the version before dropping the entry, so a concurrent
// fill tagged with the previous version stays unusable.
func (c *ContactCache) Invalidate(ctx context.Context, userID int64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.versionKey(userID))
		pipe.Del(ctx, c.listKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("contact cache invalidate: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *ContactCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ContactCache) listKey(userID int64) string {
	return "contacts:persons:" + strconv.FormatInt(userID, 10)
}

func (c *ContactCache) versionKey(userID int64) string {
	return "contacts:version:" + strconv.FormatInt(userID, 10)
}
