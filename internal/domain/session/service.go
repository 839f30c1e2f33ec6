package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/biteswipe/backend/internal/repository"
	"github.com/google/uuid"
)

// Sessions created but never started expire informationally after a day.
const defaultSessionTTL = 24 * time.Hour

// Service is the single authority for session lifecycle transitions. It
// composes join code generation, invitation handling, vote aggregation and
// expiry scheduling over the session repository.
type Service struct {
	sessions    Repository
	users       UserDirectory
	restaurants RestaurantSource
	notifier    Notifier
	scheduler   Scheduler
	codes       *JoinCodeGenerator
	logger      *slog.Logger
}

// NewService creates a new session service.
func NewService(
	sessions Repository,
	users UserDirectory,
	restaurants RestaurantSource,
	notifier Notifier,
	scheduler Scheduler,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions:    sessions,
		users:       users,
		restaurants: restaurants,
		notifier:    notifier,
		scheduler:   scheduler,
		codes:       NewJoinCodeGenerator(sessions),
		logger:      logger,
	}
}

// Create builds a new session with creatorID as sole participant and a
// candidate restaurant set discovered around loc.
func (s *Service) Create(ctx context.Context, creatorID string, loc restaurant.Location) (*Session, error) {
	if creatorID == "" {
		return nil, ErrInvalidInput
	}

	exists, err := s.users.Exists(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("checking creator: %w", err)
	}
	if !exists {
		return nil, ErrCreatorNotFound
	}

	candidates, err := s.restaurants.FindCandidates(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("finding candidates: %w", err)
	}

	now := time.Now()
	tallies := make([]Tally, len(candidates))
	for i, r := range candidates {
		tallies[i] = Tally{RestaurantID: r.ID, Position: i}
	}

	// The generator checks uniqueness before use, but a concurrent creator
	// can still win the same code; the store's uniqueness constraint is
	// authoritative, so retry the whole draw on a duplicate.
	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		code, err := s.codes.Generate(ctx)
		if err != nil {
			return nil, err
		}

		sess := &Session{
			ID:        uuid.NewString(),
			JoinCode:  code,
			CreatorID: creatorID,
			Status:    StatusCreated,
			Location:  loc,
			Participants: []Participant{
				{UserID: creatorID, Preferences: []Preference{}, JoinedAt: now},
			},
			PendingInvitations: []string{},
			Restaurants:        tallies,
			CreatedAt:          now,
			ExpiresAt:          now.Add(defaultSessionTTL),
		}

		if err := s.sessions.Create(ctx, sess); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return nil, fmt.Errorf("creating session: %w", err)
		}
		s.logger.Info("session created", "session_id", sess.ID, "creator_id", creatorID)
		return sess, nil
	}
	return nil, ErrJoinCodeExhausted
}

// Start transitions the session from CREATED to MATCHING and arms the
// expiry timer. Only the creator may start a session.
func (s *Service) Start(ctx context.Context, sessionID, callerID string, duration time.Duration) (*Session, error) {
	if sessionID == "" || callerID == "" || duration <= 0 {
		return nil, ErrInvalidInput
	}

	expiresAt := time.Now().Add(duration)
	err := s.sessions.Start(ctx, sessionID, callerID, expiresAt)
	if err != nil {
		if !errors.Is(err, repository.ErrNoMatch) {
			return nil, fmt.Errorf("starting session: %w", err)
		}
		sess, readErr := s.sessions.Get(ctx, sessionID)
		if readErr != nil {
			if errors.Is(readErr, repository.ErrNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, fmt.Errorf("loading session: %w", readErr)
		}
		if sess.CreatorID != callerID {
			return nil, ErrNotCreator
		}
		return nil, ErrInvalidState
	}

	s.scheduler.Arm(sessionID, duration)
	s.logger.Info("session started", "session_id", sessionID, "duration", duration)

	return s.sessions.Get(ctx, sessionID)
}

// Get returns the session by ID.
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrInvalidInput
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return sess, nil
}

// ListForUser returns non-completed sessions where the user is creator,
// participant, or invitee, most recent first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Session, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

// Restaurants returns the full restaurant records for the session's
// candidate list, in candidate order.
func (s *Service) Restaurants(ctx context.Context, sessionID string) ([]restaurant.Restaurant, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(sess.Restaurants))
	for i, t := range sess.Restaurants {
		ids[i] = t.RestaurantID
	}
	return s.restaurants.GetByIDs(ctx, ids)
}

// Result returns the winning restaurant. Valid once the session is
// COMPLETED, or while MATCHING if every participant is done swiping, in
// which case the session completes as a side effect. The winner is stamped
// on the session; repeat calls return the stamped selection.
func (s *Service) Result(ctx context.Context, sessionID string) (*restaurant.Restaurant, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.FinalSelection != nil {
		return s.restaurants.Get(ctx, sess.FinalSelection.RestaurantID)
	}

	switch {
	case sess.Status == StatusCompleted:
	case sess.Status == StatusMatching && sess.AllDone():
		// Whether this call wins the transition or a concurrent one does,
		// the session is completed either way.
		if _, err := s.sessions.CompleteIfAllDone(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("completing session: %w", err)
		}
		s.scheduler.Cancel(sessionID)
	default:
		return nil, ErrSessionNotReady
	}

	top, err := s.sessions.TopRestaurant(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotReady
		}
		return nil, fmt.Errorf("computing winner: %w", err)
	}

	if err := s.sessions.SetFinalSelection(ctx, sessionID, top.RestaurantID, time.Now()); err != nil {
		return nil, fmt.Errorf("recording final selection: %w", err)
	}

	// Re-read in case a concurrent call stamped a different winner first.
	sess, err = s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.FinalSelection != nil {
		return s.restaurants.Get(ctx, sess.FinalSelection.RestaurantID)
	}
	return s.restaurants.Get(ctx, top.RestaurantID)
}
