package transport

import (
	"errors"
	"net/http"

	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/biteswipe/backend/internal/domain/session"
	"github.com/biteswipe/backend/internal/domain/user"
	"github.com/biteswipe/backend/internal/repository"
)

// statusForError maps domain error kinds to HTTP status codes. The switch
// is on tagged variants, never on message text.
func statusForError(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrCreatorNotFound),
		errors.Is(err, session.ErrUserNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, restaurant.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, session.ErrNotCreator),
		errors.Is(err, session.ErrCreatorCannotLeave):
		return http.StatusForbidden

	case errors.Is(err, session.ErrInvalidState),
		errors.Is(err, session.ErrSessionClosed),
		errors.Is(err, session.ErrSessionNotReady),
		errors.Is(err, session.ErrAlreadyParticipant),
		errors.Is(err, session.ErrAlreadyInvited),
		errors.Is(err, session.ErrNotInvited),
		errors.Is(err, session.ErrNotParticipant),
		errors.Is(err, session.ErrAlreadyVoted),
		errors.Is(err, session.ErrUnknownRestaurant),
		errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest

	case errors.Is(err, repository.ErrUnavailable),
		errors.Is(err, restaurant.ErrDiscoveryFailed):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
