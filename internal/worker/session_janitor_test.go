package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mufradat/mufradat-backend/internal/model"
	"github.com/rs/zerolog"
)

// flakySessionStore counts sweeps and can be configured to fail or panic.
type flakySessionStore struct {
	sweeps  atomic.Int64
	failErr error
	doPanic bool
}

func (f *flakySessionStore) Create(context.Context, int, []model.QuizQuestion, []string, time.Duration) (string, error) {
	return "", errors.New("not implemented")
}

func (f *flakySessionStore) Consume(context.Context, string) (*model.QuizSession, error) {
	return nil, errors.New("not implemented")
}

func (f *flakySessionStore) SweepExpired(context.Context, time.Time) (int, error) {
	f.sweeps.Add(1)
	if f.doPanic {
		panic("sweep blew up")
	}
	if f.failErr != nil {
		return 0, f.failErr
	}
	return 1, nil
}

func TestSessionJanitorSweepsOnInterval(t *testing.T) {
	fake := &flakySessionStore{}
	j := NewSessionJanitor(fake, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Start(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for fake.sweeps.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d sweeps before deadline, want at least 3", fake.sweeps.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestSessionJanitorSurvivesFailures(t *testing.T) {
	fake := &flakySessionStore{failErr: errors.New("backend down")}
	j := NewSessionJanitor(fake, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	j.Start(ctx)

	// A failing sweep must not end the loop; later ticks still sweep.
	if got := fake.sweeps.Load(); got < 2 {
		t.Fatalf("sweeps = %d, want the loop to keep running past failures", got)
	}
}

func TestSessionJanitorSurvivesPanics(t *testing.T) {
	fake := &flakySessionStore{doPanic: true}
	j := NewSessionJanitor(fake, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	j.Start(ctx)

	if got := fake.sweeps.Load(); got < 2 {
		t.Fatalf("sweeps = %d, want the loop to keep running past panics", got)
	}
}
