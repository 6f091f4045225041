// Package dedupe guards against repeated deliveries of the same feed
// document. The batch sequence number exists only for this purpose; it takes
// no part in document equality.
package dedupe

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "caseflow:feed:"

// Guard records document identities in redis with a TTL. The first sighting
// of a key claims it; later sightings within the window report seen.
type Guard struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Guard {
	return &Guard{client: client, ttl: ttl}
}

// Seen claims the key if unclaimed and reports whether it was already held.
func (g *Guard) Seen(ctx context.Context, key string) (bool, error) {
	claimed, err := g.client.SetNX(ctx, keyPrefix+key, 1, g.ttl).Result()
	if err != nil {
		return false, err
	}
	return !claimed, nil
}
