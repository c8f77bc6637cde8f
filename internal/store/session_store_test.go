package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mufradat/mufradat-backend/internal/model"
)

func testQuestions() []model.QuizQuestion {
	return []model.QuizQuestion{
		{WordID: uuid.New(), English: "bread", Arabic: "خبز", Direction: model.DirectionArabicToEnglish},
		{WordID: uuid.New(), English: "water", Arabic: "ماء", Direction: model.DirectionArabicToEnglish},
	}
}

func TestMemorySessionStoreCreateAndConsume(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()
	questions := testQuestions()

	token, err := s.Create(ctx, 7, questions, []string{"food"}, time.Minute)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(token))
	}

	sess, err := s.Consume(ctx, token)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if sess.UserID != 7 {
		t.Errorf("UserID = %d, want 7", sess.UserID)
	}
	if len(sess.Questions) != len(questions) {
		t.Errorf("questions = %d, want %d", len(sess.Questions), len(questions))
	}
	if got := sess.ExpiresAt.Sub(sess.CreatedAt); got != time.Minute {
		t.Errorf("TTL = %v, want %v", got, time.Minute)
	}

	// Already consumed
	if _, err := s.Consume(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Consume error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemorySessionStoreConsumeUnknownToken(t *testing.T) {
	s := NewMemorySessionStore()
	if _, err := s.Consume(context.Background(), "no-such-token"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Consume error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemorySessionStoreConsumeAtMostOnce(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	token, err := s.Create(ctx, 1, testQuestions(), nil, time.Minute)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const workers = 32
	var wg sync.WaitGroup
	wins := make(chan *model.QuizSession, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sess, err := s.Consume(ctx, token); err == nil {
				wins <- sess
			}
		}()
	}
	wg.Wait()
	close(wins)

	got := 0
	for range wins {
		got++
	}
	if got != 1 {
		t.Fatalf("%d concurrent consumes succeeded, want exactly 1", got)
	}
}

func TestMemorySessionStoreConsumeExpired(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }

	token, err := s.Create(ctx, 1, testQuestions(), nil, time.Minute)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Exactly at expiry counts as expired, even though no sweep has run.
	s.now = func() time.Time { return base.Add(time.Minute) }
	if _, err := s.Consume(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Consume at expiry error = %v, want ErrSessionNotFound", err)
	}
	if s.Len() != 0 {
		t.Errorf("expired session still stored, Len = %d", s.Len())
	}
}

func TestMemorySessionStoreSweepExpired(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }

	short, err := s.Create(ctx, 1, testQuestions(), nil, time.Minute)
	if err != nil {
		t.Fatalf("Create short: %v", err)
	}
	long, err := s.Create(ctx, 2, testQuestions(), nil, time.Hour)
	if err != nil {
		t.Fatalf("Create long: %v", err)
	}

	removed, err := s.SweepExpired(ctx, base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	// Sweeping again at the same instant removes nothing.
	removed, err = s.SweepExpired(ctx, base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("second SweepExpired: %v", err)
	}
	if removed != 0 {
		t.Errorf("second sweep removed = %d, want 0", removed)
	}

	if _, err := s.Consume(ctx, short); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("swept session still consumable")
	}
	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := s.Consume(ctx, long); err != nil {
		t.Errorf("live session lost by sweep: %v", err)
	}
}

func TestMemorySessionStoreTokensAreUnique(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := s.Create(ctx, i, testQuestions(), nil, time.Minute)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token issued: %s", token)
		}
		seen[token] = true
	}
}
