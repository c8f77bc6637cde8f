package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mufradat/mufradat-backend/internal/config"
	"github.com/mufradat/mufradat-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps quiz sessions in Redis so they survive process
// restarts and are shared across replicas. Expiry rides on the key TTL, so
// the janitor's sweep has nothing to reclaim here.
type RedisSessionStore struct {
	rdb *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

// Create implements SessionStore.
func (s *RedisSessionStore) Create(ctx context.Context, userID int, questions []model.QuizQuestion, selectedTags []string, ttl time.Duration) (string, error) {
	token, err := newQuizToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	payload, err := json.Marshal(&model.QuizSession{
		Token:        token,
		UserID:       userID,
		Questions:    questions,
		SelectedTags: selectedTags,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("marshal quiz session: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, config.CacheKey.QuizSessionKey(token), payload, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("store quiz session: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("quiz token collision for %s…", token[:8])
	}
	return token, nil
}

// Consume implements SessionStore. GETDEL makes the lookup-and-remove a
// single Redis operation, so two racing submissions cannot both win.
func (s *RedisSessionStore) Consume(ctx context.Context, token string) (*model.QuizSession, error) {
	raw, err := s.rdb.GetDel(ctx, config.CacheKey.QuizSessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consume quiz session: %w", err)
	}

	var sess model.QuizSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal quiz session: %w", err)
	}

	// The key TTL normally enforces this; the explicit check covers clock
	// drift between replicas.
	if !sess.ExpiresAt.After(time.Now()) {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

// SweepExpired implements SessionStore. Redis evicts expired keys itself.
func (s *RedisSessionStore) SweepExpired(ctx context.Context, _ time.Time) (int, error) {
	return 0, nil
}
