package session

import "errors"

var (
	// ErrSessionNotFound indicates the session doesn't exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrCreatorNotFound indicates the creating user doesn't exist.
	ErrCreatorNotFound = errors.New("creator not found")
	// ErrUserNotFound indicates a referenced user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidState indicates the operation is not allowed in the session's current status.
	ErrInvalidState = errors.New("operation not allowed in current session state")
	// ErrSessionClosed indicates the session has already completed.
	ErrSessionClosed = errors.New("session already completed")
	// ErrNotCreator indicates the caller is not the session creator.
	ErrNotCreator = errors.New("caller is not the session creator")
	// ErrAlreadyParticipant indicates the user has already joined the session.
	ErrAlreadyParticipant = errors.New("user is already a participant")
	// ErrAlreadyInvited indicates the user already has a pending invitation.
	ErrAlreadyInvited = errors.New("user has already been invited")
	// ErrNotInvited indicates the user has no pending invitation.
	ErrNotInvited = errors.New("user has not been invited")
	// ErrNotParticipant indicates the user has not joined the session.
	ErrNotParticipant = errors.New("user is not a participant")
	// ErrCreatorCannotLeave indicates the creator tried to leave their own session.
	ErrCreatorCannotLeave = errors.New("session creator cannot leave")
	// ErrAlreadyVoted indicates the user already swiped on this restaurant.
	ErrAlreadyVoted = errors.New("user already swiped on this restaurant")
	// ErrUnknownRestaurant indicates the restaurant is not in the session's candidate list.
	ErrUnknownRestaurant = errors.New("restaurant not in session")
	// ErrSessionNotReady indicates a result was requested before the session finished.
	ErrSessionNotReady = errors.New("session result not ready")
	// ErrJoinCodeExhausted indicates join code generation ran out of attempts.
	ErrJoinCodeExhausted = errors.New("join code generation exhausted")
	// ErrInvalidInput indicates invalid session input.
	ErrInvalidInput = errors.New("invalid session input")
)
