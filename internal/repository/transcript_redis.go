package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"usi_bridge/internal/domain/transcript"
	"usi_bridge/internal/errors"
)

// RedisTranscriptStore keeps the most recent lines of every engine in a
// capped redis list.
type RedisTranscriptStore struct {
	redis *redis.Client
	limit int
	ttl   time.Duration
	log   *zap.SugaredLogger
}

func NewRedisTranscriptStore(redis *redis.Client, limit int, ttl time.Duration, log *zap.SugaredLogger) *RedisTranscriptStore {
	return &RedisTranscriptStore{
		redis: redis,
		limit: limit,
		ttl:   ttl,
		log:   log,
	}
}

func transcriptKey(engineID string) string {
	return "usi:transcript:" + engineID
}

func (r *RedisTranscriptStore) Append(ctx context.Context, entry transcript.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	key := transcriptKey(entry.EngineID)
	_, err = r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		if r.limit > 0 {
			pipe.LTrim(ctx, key, int64(-r.limit), -1)
		}
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append transcript %s: %w", entry.EngineID, err)
	}
	return nil
}

// Recent returns up to limit entries, oldest first. limit <= 0 means all
// that are kept.
func (r *RedisTranscriptStore) Recent(ctx context.Context, engineID string, limit int) ([]transcript.Entry, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	values, err := r.redis.LRange(ctx, transcriptKey(engineID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", engineID, err)
	}
	if len(values) == 0 {
		return nil, errors.ErrTranscriptNotFound
	}

	entries := make([]transcript.Entry, 0, len(values))
	for _, v := range values {
		var entry transcript.Entry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			r.log.Errorw("failed to unmarshal transcript entry", "engine_id", engineID, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
