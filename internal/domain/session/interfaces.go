package session

import (
	"context"
	"time"

	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/biteswipe/backend/internal/domain/user"
)

// Repository provides persistence for sessions. Every precondition-guarded
// mutation is a single atomic conditional update: the store applies it iff
// the precondition holds against the current stored state and reports
// repository.ErrNoMatch otherwise. Callers disambiguate a no-match with a
// follow-up read.
type Repository interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	GetByJoinCode(ctx context.Context, code string) (*Session, error)
	JoinCodeTaken(ctx context.Context, code string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Session, error)

	// Start transitions CREATED -> MATCHING iff creatorID owns the session.
	Start(ctx context.Context, sessionID, creatorID string, expiresAt time.Time) error
	// ForceComplete sets status COMPLETED unless already completed. Idempotent.
	ForceComplete(ctx context.Context, sessionID string) error
	// CompleteIfAllDone completes a MATCHING session iff every participant is
	// done swiping. Reports whether this call won the transition.
	CompleteIfAllDone(ctx context.Context, sessionID string) (bool, error)

	AddInvitation(ctx context.Context, sessionID, userID string, invitedAt time.Time) error
	AcceptInvitation(ctx context.Context, sessionID, userID string, joinedAt time.Time) error
	RemoveInvitation(ctx context.Context, sessionID, userID string) error
	RemoveParticipant(ctx context.Context, sessionID, userID string) error

	// RecordVote appends the preference and updates the restaurant tally in
	// one atomic unit. A duplicate (session, user, restaurant) vote is
	// repository.ErrDuplicate; a failed precondition is repository.ErrNoMatch.
	RecordVote(ctx context.Context, sessionID, userID, restaurantID string, liked bool, at time.Time) error
	HasVote(ctx context.Context, sessionID, userID, restaurantID string) (bool, error)
	MarkDone(ctx context.Context, sessionID, userID string) error

	SetFinalSelection(ctx context.Context, sessionID, restaurantID string, at time.Time) error
	TopRestaurant(ctx context.Context, sessionID string) (*Tally, error)
	ListExpiring(ctx context.Context) ([]ExpiryRef, error)
}

// UserDirectory validates and resolves user identities.
type UserDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
	Resolve(ctx context.Context, id string) (*user.User, error)
}

// RestaurantSource supplies candidate restaurants and resolves them by ID.
type RestaurantSource interface {
	FindCandidates(ctx context.Context, loc restaurant.Location) ([]restaurant.Restaurant, error)
	Get(ctx context.Context, id string) (*restaurant.Restaurant, error)
	GetByIDs(ctx context.Context, ids []string) ([]restaurant.Restaurant, error)
}

// Notifier delivers fire-and-forget notifications. Delivery failures are
// logged by the implementation, never propagated.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string)
}

// Scheduler arms one-shot completion timers for started sessions.
type Scheduler interface {
	Arm(sessionID string, d time.Duration)
	Cancel(sessionID string)
}
