package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/biteswipe/backend/internal/domain/user"
	"github.com/biteswipe/backend/internal/repository"
)

// Invite appends a pending invitation for userID and notifies them.
func (s *Service) Invite(ctx context.Context, sessionID, userID string) (*Session, error) {
	if sessionID == "" || userID == "" {
		return nil, ErrInvalidInput
	}

	invitee, err := s.users.Resolve(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolving invitee: %w", err)
	}

	err = s.sessions.AddInvitation(ctx, sessionID, userID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadyInvited
		case errors.Is(err, repository.ErrNoMatch):
			return nil, s.diagnoseInvite(ctx, sessionID, userID)
		default:
			return nil, fmt.Errorf("adding invitation: %w", err)
		}
	}

	s.notifier.Notify(ctx, invitee.ID, "BiteSwipe invitation", "You have been invited to pick a restaurant")

	return s.Get(ctx, sessionID)
}

// Join moves userID from pending invitations to participants. codeOrID may
// be a join code or a session ID.
func (s *Service) Join(ctx context.Context, codeOrID, userID string) (*Session, error) {
	if codeOrID == "" || userID == "" {
		return nil, ErrInvalidInput
	}

	sess, err := s.sessions.GetByJoinCode(ctx, codeOrID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("resolving join code: %w", err)
		}
		sess, err = s.sessions.Get(ctx, codeOrID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, fmt.Errorf("loading session: %w", err)
		}
	}

	err = s.sessions.AcceptInvitation(ctx, sess.ID, userID, time.Now())
	if err != nil {
		if !errors.Is(err, repository.ErrNoMatch) {
			return nil, fmt.Errorf("joining session: %w", err)
		}
		fresh, readErr := s.sessions.Get(ctx, sess.ID)
		if readErr != nil {
			if errors.Is(readErr, repository.ErrNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, fmt.Errorf("loading session: %w", readErr)
		}
		switch {
		case fresh.Status == StatusCompleted:
			return nil, ErrSessionClosed
		case fresh.IsParticipant(userID):
			return nil, ErrAlreadyParticipant
		default:
			return nil, ErrNotInvited
		}
	}

	s.logger.Info("user joined session", "session_id", sess.ID, "user_id", userID)
	return s.Get(ctx, sess.ID)
}

// Reject removes userID's pending invitation.
func (s *Service) Reject(ctx context.Context, sessionID, userID string) (*Session, error) {
	if sessionID == "" || userID == "" {
		return nil, ErrInvalidInput
	}

	err := s.sessions.RemoveInvitation(ctx, sessionID, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoMatch) {
			return nil, fmt.Errorf("rejecting invitation: %w", err)
		}
		return nil, s.diagnoseInvite(ctx, sessionID, userID)
	}

	return s.Get(ctx, sessionID)
}

// Leave removes userID from the participants. The creator cannot leave, and
// any votes the user already cast stay counted in the tallies.
func (s *Service) Leave(ctx context.Context, sessionID, userID string) (*Session, error) {
	if sessionID == "" || userID == "" {
		return nil, ErrInvalidInput
	}

	err := s.sessions.RemoveParticipant(ctx, sessionID, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoMatch) {
			return nil, fmt.Errorf("leaving session: %w", err)
		}
		sess, readErr := s.sessions.Get(ctx, sessionID)
		if readErr != nil {
			if errors.Is(readErr, repository.ErrNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, fmt.Errorf("loading session: %w", readErr)
		}
		switch {
		case sess.Status == StatusCompleted:
			return nil, ErrSessionClosed
		case sess.CreatorID == userID:
			return nil, ErrCreatorCannotLeave
		default:
			return nil, ErrNotParticipant
		}
	}

	return s.Get(ctx, sessionID)
}

// diagnoseInvite resolves a no-match on an invitation mutation to a
// specific failure reason.
func (s *Service) diagnoseInvite(ctx context.Context, sessionID, userID string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("loading session: %w", err)
	}
	switch {
	case sess.Status == StatusCompleted:
		return ErrSessionClosed
	case sess.IsParticipant(userID):
		return ErrAlreadyParticipant
	case sess.IsInvited(userID):
		return ErrAlreadyInvited
	default:
		return ErrNotInvited
	}
}
