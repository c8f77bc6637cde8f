// Package store holds the in-flight quiz session stores. A session is
// created at quiz start, consumed exactly once at submit, and reclaimed by
// the janitor if it expires unsubmitted.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mufradat/mufradat-backend/internal/model"
)

// ErrSessionNotFound is returned when a token does not resolve to a live
// session. Expired, already-consumed, and never-issued tokens are
// indistinguishable through this error.
var ErrSessionNotFound = errors.New("quiz session not found")

// SessionStore keeps in-flight quiz sessions keyed by opaque token.
type SessionStore interface {
	// Create records a new session and returns its token.
	Create(ctx context.Context, userID int, questions []model.QuizQuestion, selectedTags []string, ttl time.Duration) (string, error)
	// Consume atomically looks up and removes the session. At most one
	// Consume per token ever returns a session.
	Consume(ctx context.Context, token string) (*model.QuizSession, error)
	// SweepExpired removes every session whose expiry is at or before now
	// and returns the number removed. Idempotent.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// newQuizToken returns a 32-byte random token in hex. The token space is
// large enough that a collision with a live session is treated as an
// internal error, never retried silently.
func newQuizToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate quiz token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// MemorySessionStore is the default single-process store: a mutex-guarded
// map. All three operations are O(1) except the sweep, which walks the map.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.QuizSession

	// now is the clock; overridable in tests.
	now func() time.Time
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*model.QuizSession),
		now:      time.Now,
	}
}

// Create implements SessionStore.
func (s *MemorySessionStore) Create(_ context.Context, userID int, questions []model.QuizQuestion, selectedTags []string, ttl time.Duration) (string, error) {
	token, err := newQuizToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[token]; exists {
		return "", fmt.Errorf("quiz token collision for %s…", token[:8])
	}

	now := s.now()
	s.sessions[token] = &model.QuizSession{
		Token:        token,
		UserID:       userID,
		Questions:    questions,
		SelectedTags: selectedTags,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}
	return token, nil
}

// Consume implements SessionStore. The lookup and removal happen under one
// lock so concurrent submissions with the same token cannot both succeed.
// A session past its expiry is removed and reported not found even if the
// janitor has not swept it yet.
func (s *MemorySessionStore) Consume(_ context.Context, token string) (*model.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(s.sessions, token)

	if !sess.ExpiresAt.After(s.now()) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// SweepExpired implements SessionStore.
func (s *MemorySessionStore) SweepExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.sessions {
		if !sess.ExpiresAt.After(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of live sessions. Used by tests and the janitor log.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
