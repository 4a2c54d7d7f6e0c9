package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKey = "dashboard:audit"

// RedisClient is the subset of the go-redis client the store needs.
type RedisClient interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisStore keeps the newest maxEntries entries in a capped list.
type RedisStore struct {
	client     RedisClient
	maxEntries int64
	logger     *zap.SugaredLogger
}

func NewRedisStore(client RedisClient, maxEntries int, logger *zap.Logger) *RedisStore {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &RedisStore{client: client, maxEntries: int64(maxEntries), logger: logger.Sugar()}
}

func (s *RedisStore) Record(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	if err := s.client.LPush(ctx, redisKey, data).Err(); err != nil {
		return fmt.Errorf("push audit entry: %w", err)
	}
	if err := s.client.LTrim(ctx, redisKey, 0, s.maxEntries-1).Err(); err != nil {
		return fmt.Errorf("trim audit list: %w", err)
	}
	return nil
}

// RecordBatch pushes entries in order so the last one ends up at the head.
func (s *RedisStore) RecordBatch(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode audit entry: %w", err)
		}
		values = append(values, data)
	}
	if err := s.client.LPush(ctx, redisKey, values...).Err(); err != nil {
		return fmt.Errorf("push audit entries: %w", err)
	}
	if err := s.client.LTrim(ctx, redisKey, 0, s.maxEntries-1).Err(); err != nil {
		return fmt.Errorf("trim audit list: %w", err)
	}
	return nil
}

func (s *RedisStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	raw, err := s.client.LRange(ctx, redisKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read audit list: %w", err)
	}
	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			s.logger.Warnw("Skipping malformed audit entry", "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
