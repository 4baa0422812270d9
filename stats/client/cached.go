package client

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/OmatthewY/explore-with-me/core/cache"
	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/stats/dto"
)

// CachedClient serves repeated stats lookups from redis. The end of the
// window is bucketed by ttl, so a cached answer is at most ttl old.
type CachedClient struct {
	next  StatsGetter
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedClient(next StatsGetter, c cache.Cache, ttl time.Duration) *CachedClient {
	return &CachedClient{next: next, cache: c, ttl: ttl}
}

func (c *CachedClient) GetStats(ctx context.Context, req dto.StatsRequest) ([]dto.ViewStats, error) {
	key := c.key(req)

	var cached []dto.ViewStats
	found, err := c.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("StatsClient:Cache:GetFailed", "key", key, "error", err)
	}
	if found {
		return cached, nil
	}

	stats, err := c.next.GetStats(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, stats, c.ttl); err != nil {
		logger.Warn("StatsClient:Cache:SetFailed", "key", key, "error", err)
	}
	return stats, nil
}

func (c *CachedClient) key(req dto.StatsRequest) string {
	uris := slices.Clone(req.URIs)
	slices.Sort(uris)

	var b strings.Builder
	b.WriteString(strconv.FormatInt(req.Start.Unix(), 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(req.End.Truncate(c.ttl).Unix(), 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(req.Unique))
	for _, u := range uris {
		b.WriteByte('|')
		b.WriteString(u)
	}

	sum := sha1.Sum([]byte(b.String()))
	return constants.RedisKeyViewsPrefix + hex.EncodeToString(sum[:])
}
