package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/throttle"
)

// The upvote ledger is kept for a week; penalty and cooldown state never
// expire (violations are permanent until an administrative reset).
const upvoteLedgerTTL = 7 * 24 * time.Hour

// RedisStore persists submitter state in Redis.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to Redis. Unlike caching, submitter state is
// load-bearing, so a failed connection is returned as an error instead of
// degrading to a no-op.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

// Client returns the underlying Redis client (for health checks).
func (s *RedisStore) Client() *redis.Client {
	return s.rdb
}

// Close shuts down the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) PenaltyState(ctx context.Context, submitterID string) (throttle.PenaltyState, error) {
	var ps throttle.PenaltyState
	err := s.getJSON(ctx, penaltyKey(submitterID), &ps)
	return ps, err
}

func (s *RedisStore) SavePenaltyState(ctx context.Context, submitterID string, ps throttle.PenaltyState) error {
	return s.setJSON(ctx, penaltyKey(submitterID), ps, 0)
}

func (s *RedisStore) CooldownState(ctx context.Context, submitterID string) (throttle.CooldownState, error) {
	var cs throttle.CooldownState
	err := s.getJSON(ctx, cooldownKey(submitterID), &cs)
	return cs, err
}

func (s *RedisStore) SaveCooldownState(ctx context.Context, submitterID string, cs throttle.CooldownState) error {
	return s.setJSON(ctx, cooldownKey(submitterID), cs, 0)
}

func (s *RedisStore) ClearSubmitter(ctx context.Context, submitterID string) error {
	return s.rdb.Del(ctx, penaltyKey(submitterID), cooldownKey(submitterID)).Err()
}

func (s *RedisStore) HasUpvoted(ctx context.Context, submitterID, questionID string) (bool, error) {
	return s.rdb.SIsMember(ctx, upvotedKey(submitterID), questionID).Result()
}

func (s *RedisStore) RecordUpvote(ctx context.Context, submitterID, questionID string) error {
	key := upvotedKey(submitterID)
	if err := s.rdb.SAdd(ctx, key, questionID).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, upvoteLedgerTTL).Err()
}

func (s *RedisStore) SaveSession(ctx context.Context, sess model.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.setJSON(ctx, sessionKey(sess.Token), sess, ttl)
}

func (s *RedisStore) Session(ctx context.Context, token string) (model.Session, error) {
	var sess model.Session
	data, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return sess, ErrSessionNotFound
	}
	if err != nil {
		return sess, err
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return sess, ErrSessionNotFound
	}
	return sess, nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}

// getJSON reads a JSON value into dst. Missing keys and undecodable payloads
// both leave dst at its zero value: malformed persisted state means "no
// state", never a failed check.
func (s *RedisStore) getJSON(ctx context.Context, key string, dst any) error {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return nil
	}
	return nil
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, ttl).Err()
}

func penaltyKey(submitterID string) string  { return "penalty:" + submitterID }
func cooldownKey(submitterID string) string { return "cooldown:" + submitterID }
func upvotedKey(submitterID string) string  { return "upvoted:" + submitterID }
func sessionKey(token string) string        { return "session:" + token }
