package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/retronet/feedranker/ranking"
	Logger "github.com/retronet/feedranker/utils/log"
)

const trendingCacheTTL = 60 * time.Second

// RedisTrendingCache keeps the scored standalone-trending candidate list in
// redis for a short TTL. Cache failures degrade to a recompute and are only
// logged, the trending surface never errors because of the cache.
type RedisTrendingCache struct {
	client *redis.Client
}

func NewRedisTrendingCache(client *redis.Client) *RedisTrendingCache {
	return &RedisTrendingCache{client: client}
}

func cacheKey(key string) string {
	return "feedranker_" + key
}

func (c *RedisTrendingCache) Get(ctx context.Context, key string) ([]ranking.Candidate, bool) {
	raw, err := c.client.Get(ctx, cacheKey(key)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		Logger.Log.Warn("trending cache read failed: ", err)
		return nil, false
	}

	var candidates []ranking.Candidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		Logger.Log.Warn("trending cache entry corrupt, dropping: ", err)
		return nil, false
	}
	return candidates, true
}

func (c *RedisTrendingCache) Set(ctx context.Context, key string, candidates []ranking.Candidate) {
	raw, err := json.Marshal(candidates)
	if err != nil {
		Logger.Log.Warn("cannot encode trending cache entry: ", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(key), raw, trendingCacheTTL).Err(); err != nil {
		Logger.Log.Warn("trending cache write failed: ", err)
	}
}
