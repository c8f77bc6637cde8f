package worker

import (
	"context"
	"time"

	"github.com/mufradat/mufradat-backend/internal/store"
	"github.com/rs/zerolog"
)

// SessionJanitor periodically evicts expired, unsubmitted quiz sessions from
// the session store. It is best-effort: a failed or panicking sweep is
// logged and the next tick runs as scheduled. Nothing on the request path
// waits on it — submission re-checks expiry itself, so a missed sweep only
// delays reclamation, never correctness.
type SessionJanitor struct {
	sessions store.SessionStore
	interval time.Duration
	log      zerolog.Logger
}

// NewSessionJanitor creates a janitor sweeping at the given interval.
func NewSessionJanitor(sessions store.SessionStore, interval time.Duration, log zerolog.Logger) *SessionJanitor {
	return &SessionJanitor{
		sessions: sessions,
		interval: interval,
		log:      log.With().Str("component", "session_janitor").Logger(),
	}
}

// Start runs the sweep loop until ctx is cancelled. Run it in its own
// goroutine.
func (j *SessionJanitor) Start(ctx context.Context) {
	j.log.Info().Dur("interval", j.interval).Msg("SessionJanitor started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info().Msg("SessionJanitor stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *SessionJanitor) sweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			j.log.Error().Interface("panic", r).Msg("Sweep panicked")
		}
	}()

	removed, err := j.sessions.SweepExpired(ctx, time.Now())
	if err != nil {
		j.log.Error().Err(err).Msg("Sweep failed")
		return
	}
	if removed > 0 {
		j.log.Info().Int("removed", removed).Msg("Expired quiz sessions swept")
	} else {
		j.log.Debug().Msg("Sweep found nothing to remove")
	}
}
