package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const completeWriteTimeout = 10 * time.Second

// expiryStore is the slice of Repository the scheduler needs.
type expiryStore interface {
	ForceComplete(ctx context.Context, sessionID string) error
	ListExpiring(ctx context.Context) ([]ExpiryRef, error)
}

// ExpiryScheduler arms a one-shot timer per started session that
// force-transitions it to COMPLETED when it fires. The completion write is
// idempotent, so a timer firing after the session already completed is a
// silent no-op.
type ExpiryScheduler struct {
	store  expiryStore
	logger *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewExpiryScheduler creates a scheduler writing completions to store.
func NewExpiryScheduler(store expiryStore, logger *slog.Logger) *ExpiryScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpiryScheduler{
		store:  store,
		logger: logger,
		timers: make(map[string]*time.Timer),
	}
}

// Arm schedules completion of sessionID after d, replacing any existing
// timer for the same session.
func (s *ExpiryScheduler) Arm(sessionID string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
	}
	s.timers[sessionID] = time.AfterFunc(d, func() {
		s.fire(sessionID)
	})
}

// Cancel stops any pending timer for sessionID. Safe to call when no timer
// exists or after the timer already fired.
func (s *ExpiryScheduler) Cancel(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
		delete(s.timers, sessionID)
	}
}

// Rearm restores timers for all started sessions from their persisted
// deadlines. Sessions already past their deadline complete immediately.
// Called once at process start; the original in-process timers do not
// survive a restart.
func (s *ExpiryScheduler) Rearm(ctx context.Context) error {
	refs, err := s.store.ListExpiring(ctx)
	if err != nil {
		return fmt.Errorf("listing expiring sessions: %w", err)
	}
	now := time.Now()
	for _, ref := range refs {
		d := ref.ExpiresAt.Sub(now)
		if d <= 0 {
			s.fire(ref.SessionID)
			continue
		}
		s.Arm(ref.SessionID, d)
		s.logger.Info("rearmed session expiry", "session_id", ref.SessionID, "expires_at", ref.ExpiresAt)
	}
	return nil
}

func (s *ExpiryScheduler) fire(sessionID string) {
	s.mu.Lock()
	delete(s.timers, sessionID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), completeWriteTimeout)
	defer cancel()

	if err := s.store.ForceComplete(ctx, sessionID); err != nil {
		s.logger.Error("failed to complete expired session", "session_id", sessionID, "error", err)
		return
	}
	s.logger.Info("session expired", "session_id", sessionID)
}
