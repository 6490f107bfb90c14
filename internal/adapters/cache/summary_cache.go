package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultSummaryTTL = 10 * time.Minute

	// generationTTL outlives any summary so a stale generation cannot come back.
	generationTTL = 24 * time.Hour
)

var errStaleGeneration = errors.New("summary generation changed")

// RedisSummaryCache stores one hash per user, one field per day, next to a
// generation counter. Dropping the hash invalidates every memoized day at once.
type RedisSummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSummaryCache(rdb *redis.Client, ttl time.Duration) *RedisSummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &RedisSummaryCache{rdb: rdb, ttl: ttl}
}

func summaryKey(userID string) string {
	return fmt.Sprintf("summary:%s", userID)
}

func generationKey(userID string) string {
	return fmt.Sprintf("summary:gen:%s", userID)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter, userID string) (int64, error) {
	gen, err := cmd.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Generation returns false when Redis cannot be read, the caller then skips the cache.
func (c *RedisSummaryCache) Generation(ctx context.Context, userID string) (int64, bool) {
	gen, err := readGeneration(ctx, c.rdb, userID)
	if err != nil {
		log.Printf("[CACHE] summary generation read error for user %s: %v", userID, err)
		return 0, false
	}
	return gen, true
}

func (c *RedisSummaryCache) Get(ctx context.Context, userID, day string) (*domain.StreakSummary, bool) {
	data, err := c.rdb.HGet(ctx, summaryKey(userID), day).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] summary read error for user %s: %v", userID, err)
		}
		return nil, false
	}

	var summary domain.StreakSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		log.Printf("[CACHE] corrupted summary for user %s, dropping it", userID)
		c.Invalidate(ctx, userID)
		return nil, false
	}
	return &summary, true
}

// Set writes under WATCH on the generation key. A concurrent Invalidate
// aborts the transaction and the summary is dropped.
func (c *RedisSummaryCache) Set(ctx context.Context, userID, day string, generation int64, summary *domain.StreakSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		log.Printf("[CACHE] summary encode error: %v", err)
		return
	}

	key := summaryKey(userID)
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, userID)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, day, data)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, generationKey(userID))

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		log.Printf("[CACHE] summary for user %s changed while computing, not cached", userID)
	default:
		log.Printf("[CACHE] summary write error for user %s: %v", userID, err)
	}
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context, userID string) {
	gen := generationKey(userID)
	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, gen)
	pipe.Expire(ctx, gen, generationTTL)
	pipe.Del(ctx, summaryKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[CACHE] Failed to invalidate summary for user %s: %v", userID, err)
	}
}

// NoopSummaryCache is used when Redis is not configured.
type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(context.Context, string, string) (*domain.StreakSummary, bool) {
	return nil, false
}

func (NoopSummaryCache) Generation(context.Context, string) (int64, bool) { return 0, false }

func (NoopSummaryCache) Set(context.Context, string, string, int64, *domain.StreakSummary) {}

func (NoopSummaryCache) Invalidate(context.Context, string) {}
