package redis

import (
	"context"
	"strconv"
	"time"

	"gamestore-backoffice/internal/infra/metrics"
)

// AnchorCache keeps recently used thread anchors in Redis, in front of the
// persisted registry. Entries expire with the configured TTL; a miss is
// always answered by the registry, never treated as "no anchor".
type AnchorCache struct {
	client *Client
	ttl    time.Duration
}

func NewAnchorCache(client *Client, ttl time.Duration) *AnchorCache {
	return &AnchorCache{client: client, ttl: ttl}
}

func (c *AnchorCache) Get(ctx context.Context, sessionID string) (int64, bool) {
	v, err := c.client.Get(ctx, "thread_anchor:"+sessionID)
	if err != nil {
		metrics.IncCacheRequest("anchor", "miss")
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		metrics.IncCacheRequest("anchor", "miss")
		return 0, false
	}
	metrics.IncCacheRequest("anchor", "hit")
	return id, true
}

func (c *AnchorCache) Store(ctx context.Context, sessionID string, messageID int64) error {
	return c.client.Set(ctx, "thread_anchor:"+sessionID, strconv.FormatInt(messageID, 10), c.ttl)
}
