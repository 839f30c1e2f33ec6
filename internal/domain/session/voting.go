package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/biteswipe/backend/internal/repository"
)

// RecordVote applies a participant's swipe to the session tally. The
// predicate (MATCHING status, participant membership, unvoted restaurant)
// and the vote append are one atomic unit at the store, so two concurrent
// identical votes yield exactly one success and one ErrAlreadyVoted.
func (s *Service) RecordVote(ctx context.Context, sessionID, userID, restaurantID string, liked bool) error {
	if sessionID == "" || userID == "" || restaurantID == "" {
		return ErrInvalidInput
	}

	err := s.sessions.RecordVote(ctx, sessionID, userID, restaurantID, liked, time.Now())
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrAlreadyVoted
	}
	if !errors.Is(err, repository.ErrNoMatch) {
		return fmt.Errorf("recording vote: %w", err)
	}

	// The conditional write matched nothing; a second read distinguishes a
	// duplicate swipe from a precondition failure.
	voted, readErr := s.sessions.HasVote(ctx, sessionID, userID, restaurantID)
	if readErr != nil {
		return fmt.Errorf("disambiguating vote failure: %w", readErr)
	}
	if voted {
		return ErrAlreadyVoted
	}

	sess, readErr := s.sessions.Get(ctx, sessionID)
	if readErr != nil {
		if errors.Is(readErr, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("loading session: %w", readErr)
	}
	if sess.Status == StatusMatching && sess.IsParticipant(userID) {
		return ErrUnknownRestaurant
	}
	return ErrInvalidState
}

// MarkDoneSwiping records that userID will submit no further votes.
// Idempotent: marking an already-done participant is a no-op. When the last
// participant signals done, the session completes; the conditional update's
// predicate re-checks the full-coverage condition inside the store, so the
// race between the final two voters has exactly one winner.
func (s *Service) MarkDoneSwiping(ctx context.Context, sessionID, userID string) error {
	if sessionID == "" || userID == "" {
		return ErrInvalidInput
	}

	err := s.sessions.MarkDone(ctx, sessionID, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoMatch) {
			return fmt.Errorf("marking done: %w", err)
		}
		sess, readErr := s.sessions.Get(ctx, sessionID)
		if readErr != nil {
			if errors.Is(readErr, repository.ErrNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("loading session: %w", readErr)
		}
		if !sess.IsParticipant(userID) {
			return ErrNotParticipant
		}
		return ErrInvalidState
	}

	completed, err := s.sessions.CompleteIfAllDone(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("checking completion: %w", err)
	}
	if completed {
		s.scheduler.Cancel(sessionID)
		s.logger.Info("all participants done, session completed", "session_id", sessionID)
	}
	return nil
}
