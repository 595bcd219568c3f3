// Package idempotency guards order submission against duplicate clicks. The
// first submit within the TTL wins; repeats get the original hand-off URL
// back instead of composing a second one.
package idempotency

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Guard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewGuard(rdb *redis.Client, ttl time.Duration) *Guard {
	return &Guard{rdb: rdb, ttl: ttl}
}

// Key derives the guard key from the session and the exact submit payload.
// A corrected resubmit (different payload) is a new order, not a duplicate.
func (g *Guard) Key(sessionID string, payload []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(payload)
	return fmt.Sprintf("idem:submit:%s:%x", sessionID, h.Sum64())
}

// Claim stores value under key unless a previous claim is still live, in
// which case the stored value and dup=true come back.
func (g *Guard) Claim(ctx context.Context, key, value string) (stored string, dup bool, err error) {
	ok, err := g.rdb.SetNX(ctx, key, value, g.ttl).Result()
	if err != nil {
		return "", false, err
	}
	if ok {
		return value, false, nil
	}

	stored, err = g.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false, err
	}
	return stored, true, nil
}
