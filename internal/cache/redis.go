// Package cache provides the Redis-backed pair score cache shared between
// processes. Every Redis failure is logged and reported as a cache miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/richat-staffing/internal/matching"
	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ matching.ScoreCache = (*RedisScoreCache)(nil)

// scanBatch is the SCAN page size used by Clear
const scanBatch = 500

// RedisScoreCache stores pair scores as JSON strings. Each pair key is also
// recorded in a per-tender and a per-consultant set so that invalidation does
// not need to scan the keyspace.
type RedisScoreCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// New wraps an existing client. A zero ttl selects ScoreTTL.
func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisScoreCache {
	if ttl <= 0 {
		ttl = ScoreTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisScoreCache{client: client, logger: logger, ttl: ttl}
}

// Dial connects to Redis and checks the connection
func Dial(ctx context.Context, addr, password string, db int, logger *zap.Logger) (*RedisScoreCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return New(client, ScoreTTL, logger), nil
}

func (c *RedisScoreCache) Close() error {
	return c.client.Close()
}

func (c *RedisScoreCache) Get(ctx context.Context, consultantID, tenderID string) (types.ScoreBreakdown, bool) {
	var s types.ScoreBreakdown
	key := PairKey(consultantID, tenderID)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return s, false
	}
	if err != nil {
		c.logger.Warn("failed to get cached score", zap.String("key", key), zap.Error(err))
		return s, false
	}
	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.Warn("dropping unreadable cached score", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, key)
		return types.ScoreBreakdown{}, false
	}
	return s, true
}

func (c *RedisScoreCache) Put(ctx context.Context, consultantID, tenderID string, score types.ScoreBreakdown) {
	key := PairKey(consultantID, tenderID)
	data, err := json.Marshal(score)
	if err != nil {
		c.logger.Warn("failed to marshal score", zap.String("key", key), zap.Error(err))
		return
	}

	tenderIdx, consultantIdx := TenderIndexKey(tenderID), ConsultantIndexKey(consultantID)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, c.ttl)
		pipe.SAdd(ctx, tenderIdx, key)
		pipe.SAdd(ctx, consultantIdx, key)
		pipe.Expire(ctx, tenderIdx, c.ttl)
		pipe.Expire(ctx, consultantIdx, c.ttl)
		return nil
	})
	if err != nil {
		c.logger.Warn("failed to cache score", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisScoreCache) Delete(ctx context.Context, consultantID, tenderID string) {
	key := PairKey(consultantID, tenderID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("failed to delete cached score", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisScoreCache) InvalidateTender(ctx context.Context, tenderID string) {
	c.invalidate(ctx, TenderIndexKey(tenderID))
}

func (c *RedisScoreCache) InvalidateConsultant(ctx context.Context, consultantID string) {
	c.invalidate(ctx, ConsultantIndexKey(consultantID))
}

// invalidate deletes every pair listed in an index set, then the set itself.
// Entries left behind in the other index point at deleted keys, which is harmless.
func (c *RedisScoreCache) invalidate(ctx context.Context, index string) {
	keys, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		c.logger.Warn("failed to read cache index", zap.String("index", index), zap.Error(err))
		return
	}
	if err := c.client.Del(ctx, append(keys, index)...).Err(); err != nil {
		c.logger.Warn("failed to invalidate cached scores", zap.String("index", index), zap.Error(err))
	}
}

// Clear removes every score key and index, leaving other data in the database untouched
func (c *RedisScoreCache) Clear(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", scanBatch).Result()
		if err != nil {
			c.logger.Warn("failed to scan cached scores", zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn("failed to clear cached scores", zap.Error(err))
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
