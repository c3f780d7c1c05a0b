package redisad

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"locallink/internal/adapters/observability"
)

// Store keeps each browser session's listing->token ownership map in a
// Redis hash with a sliding TTL. There is no expiry beyond session
// lifetime; the TTL is refreshed on every touch.
type Store struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *Store {
	return &Store{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

// NewFromClient is used by tests to run against miniredis.
func NewFromClient(c *redis.Client, ttl time.Duration) *Store {
	return &Store{c: c, ttl: ttl}
}

func ownedKey(sessionID string) string {
	return fmt.Sprintf("session:%s:owned", sessionID)
}

func (s *Store) OwnerToken(ctx context.Context, sessionID string, listingID int64) (string, bool, error) {
	v, err := s.c.HGet(ctx, ownedKey(sessionID), strconv.FormatInt(listingID, 10)).Result()
	if err == redis.Nil {
		observability.ObserveSession("miss")
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	observability.ObserveSession("hit")
	_ = s.c.Expire(ctx, ownedKey(sessionID), s.ttl).Err()
	return v, true, nil
}

func (s *Store) PutOwnerToken(ctx context.Context, sessionID string, listingID int64, token string) error {
	key := ownedKey(sessionID)
	if err := s.c.HSet(ctx, key, strconv.FormatInt(listingID, 10), token).Err(); err != nil {
		return err
	}
	observability.ObserveSession("set")
	return s.c.Expire(ctx, key, s.ttl).Err()
}

func (s *Store) DeleteOwnerToken(ctx context.Context, sessionID string, listingID int64) error {
	observability.ObserveSession("del")
	return s.c.HDel(ctx, ownedKey(sessionID), strconv.FormatInt(listingID, 10)).Err()
}
