package paper

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultHistoryTTL = 10 * time.Minute

// ScopeHistory is the cached projection of prior questions for one
// uniqueness scope: texts for the prompt exclusion list, fingerprints for
// the dedup set.
type ScopeHistory struct {
	Texts        []string `json:"texts"`
	Fingerprints []string `json:"fingerprints"`
}

// HistoryCache avoids re-reading the full question history on every
// generation run. Purely an optimization: the database uniqueness
// constraint remains the authoritative duplicate guard.
type HistoryCache interface {
	Get(ctx context.Context, scope Scope) (*ScopeHistory, error)
	Set(ctx context.Context, scope Scope, history ScopeHistory) error
	Invalidate(ctx context.Context, scope Scope) error
}

// Cache is the Redis-backed HistoryCache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ HistoryCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultHistoryTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(scope Scope) string {
	return strings.Join([]string{
		"paperhistory",
		scope.UserID.String(),
		scope.Subject,
		scope.SubjectCode,
		scope.Semester,
	}, ":")
}

func (c *Cache) Get(ctx context.Context, scope Scope) (*ScopeHistory, error) {
	data, err := c.client.Get(ctx, c.key(scope)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var history ScopeHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (c *Cache) Set(ctx context.Context, scope Scope, history ScopeHistory) error {
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(scope), data, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, scope Scope) error {
	return c.client.Del(ctx, c.key(scope)).Err()
}
