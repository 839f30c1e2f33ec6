package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/biteswipe/backend/internal/domain/session"
	"github.com/biteswipe/backend/internal/repository"
)

// SessionRepository implements session.Repository for SQLite. Every
// precondition-guarded mutation is a single statement (or single
// transaction) whose WHERE clause encodes the precondition; zero affected
// rows surfaces repository.ErrNoMatch for the caller to disambiguate.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new session, its creator participant and the candidate
// list. A join code collision with a non-completed session is ErrDuplicate.
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", mapError(err))
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (
			id, join_code, creator_id, status, latitude, longitude, radius,
			created_at, expires_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sess.ID,
		sess.JoinCode,
		sess.CreatorID,
		sess.Status,
		sess.Location.Latitude,
		sess.Location.Longitude,
		sess.Location.Radius,
		sess.CreatedAt,
		sess.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to create session: %w", mapError(err))
	}

	for _, p := range sess.Participants {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO session_participants (session_id, user_id, done_swiping, joined_at)
			VALUES (?, ?, ?, ?)
		`, sess.ID, p.UserID, p.DoneSwiping, p.JoinedAt)
		if err != nil {
			return fmt.Errorf("failed to add participant: %w", mapError(err))
		}
	}

	for _, t := range sess.Restaurants {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO session_restaurants (session_id, restaurant_id, position, total_votes, positive_votes, score)
			VALUES (?, ?, ?, 0, 0, 0)
		`, sess.ID, t.RestaurantID, t.Position)
		if err != nil {
			return fmt.Errorf("failed to add candidate: %w", mapError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", mapError(err))
	}
	return nil
}

// Get retrieves a session by ID with participants, preferences,
// invitations and tallies.
func (r *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	var sess session.Session
	var finalID sql.NullString
	var selectedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id, join_code, creator_id, status, latitude, longitude, radius,
		       final_restaurant_id, selected_at, created_at, expires_at
		FROM sessions WHERE id = ?
	`, id).Scan(
		&sess.ID,
		&sess.JoinCode,
		&sess.CreatorID,
		&sess.Status,
		&sess.Location.Latitude,
		&sess.Location.Longitude,
		&sess.Location.Radius,
		&finalID,
		&selectedAt,
		&sess.CreatedAt,
		&sess.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", mapError(err))
	}
	if finalID.Valid {
		sess.FinalSelection = &session.FinalSelection{
			RestaurantID: finalID.String,
			SelectedAt:   selectedAt.Time,
		}
	}

	if err := r.loadParticipants(ctx, &sess); err != nil {
		return nil, err
	}
	if err := r.loadInvitations(ctx, &sess); err != nil {
		return nil, err
	}
	if err := r.loadTallies(ctx, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetByJoinCode retrieves the non-completed session using the code.
func (r *SessionRepository) GetByJoinCode(ctx context.Context, code string) (*session.Session, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM sessions WHERE join_code = ? AND status != 'COMPLETED'
	`, code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve join code: %w", mapError(err))
	}
	return r.Get(ctx, id)
}

// JoinCodeTaken reports whether a non-completed session uses the code.
func (r *SessionRepository) JoinCodeTaken(ctx context.Context, code string) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM sessions WHERE join_code = ? AND status != 'COMPLETED')
	`, code).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check join code: %w", mapError(err))
	}
	return taken, nil
}

// ListByUser returns non-completed sessions where the user is creator,
// participant or invitee, most recent first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID string) ([]session.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT s.id
		FROM sessions s
		LEFT JOIN session_participants p ON p.session_id = s.id AND p.user_id = ?
		LEFT JOIN session_invitations i ON i.session_id = s.id AND i.user_id = ?
		WHERE s.status != 'COMPLETED'
		  AND (s.creator_id = ? OR p.user_id IS NOT NULL OR i.user_id IS NOT NULL)
		ORDER BY s.created_at DESC
	`, userID, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", mapError(err))
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", mapError(err))
	}

	sessions := make([]session.Session, 0, len(ids))
	for _, id := range ids {
		sess, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, nil
}

// Start transitions CREATED -> MATCHING iff creatorID owns the session,
// recording the authoritative completion deadline.
func (r *SessionRepository) Start(ctx context.Context, sessionID, creatorID string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET status = 'MATCHING', expires_at = ?
		WHERE id = ? AND status = 'CREATED' AND creator_id = ?
	`, expiresAt, sessionID, creatorID)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", mapError(err))
	}
	return noMatchIfZero(res)
}

// ForceComplete sets status COMPLETED unless already completed. Firing on
// an already-completed session is a silent no-op.
func (r *SessionRepository) ForceComplete(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET status = 'COMPLETED'
		WHERE id = ? AND status != 'COMPLETED'
	`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", mapError(err))
	}
	return nil
}

// CompleteIfAllDone completes a MATCHING session iff no participant is
// still swiping. The predicate runs inside the store, so concurrent
// callers race to exactly one winner.
func (r *SessionRepository) CompleteIfAllDone(ctx context.Context, sessionID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET status = 'COMPLETED'
		WHERE id = ? AND status = 'MATCHING'
		  AND NOT EXISTS (
			SELECT 1 FROM session_participants
			WHERE session_id = ? AND done_swiping = 0
		  )
	`, sessionID, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to complete session: %w", mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// AddInvitation appends a pending invitation iff the session is not
// completed and the user is not a participant. An existing invitation is
// ErrDuplicate.
func (r *SessionRepository) AddInvitation(ctx context.Context, sessionID, userID string, invitedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO session_invitations (session_id, user_id, invited_at)
		SELECT ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM sessions WHERE id = ? AND status != 'COMPLETED')
		  AND NOT EXISTS (SELECT 1 FROM session_participants WHERE session_id = ? AND user_id = ?)
	`, sessionID, userID, invitedAt, sessionID, sessionID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to add invitation: %w", mapError(err))
	}
	return noMatchIfZero(res)
}

// AcceptInvitation atomically moves the user from pending invitations to
// participants.
func (r *SessionRepository) AcceptInvitation(ctx context.Context, sessionID, userID string, joinedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", mapError(err))
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM session_invitations
		WHERE session_id = ? AND user_id = ?
		  AND EXISTS (SELECT 1 FROM sessions WHERE id = ? AND status != 'COMPLETED')
	`, sessionID, userID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to consume invitation: %w", mapError(err))
	}
	if err := noMatchIfZero(res); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO session_participants (session_id, user_id, done_swiping, joined_at)
		VALUES (?, ?, 0, ?)
	`, sessionID, userID, joinedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to add participant: %w", mapError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit join: %w", mapError(err))
	}
	return nil
}

// RemoveInvitation deletes a pending invitation iff the session is not
// completed.
func (r *SessionRepository) RemoveInvitation(ctx context.Context, sessionID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM session_invitations
		WHERE session_id = ? AND user_id = ?
		  AND EXISTS (SELECT 1 FROM sessions WHERE id = ? AND status != 'COMPLETED')
	`, sessionID, userID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to remove invitation: %w", mapError(err))
	}
	return noMatchIfZero(res)
}

// RemoveParticipant deletes a non-creator participant from a non-completed
// session. Their recorded votes stay counted in the tallies.
func (r *SessionRepository) RemoveParticipant(ctx context.Context, sessionID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM session_participants
		WHERE session_id = ? AND user_id = ?
		  AND EXISTS (
			SELECT 1 FROM sessions
			WHERE id = ? AND status != 'COMPLETED' AND creator_id != ?
		  )
	`, sessionID, userID, sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", mapError(err))
	}
	return noMatchIfZero(res)
}

// RecordVote appends the vote and updates the restaurant tally in one
// transaction. The INSERT's predicate encodes the session-state
// preconditions; the votes primary key turns concurrent duplicates into
// ErrDuplicate.
func (r *SessionRepository) RecordVote(ctx context.Context, sessionID, userID, restaurantID string, liked bool, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", mapError(err))
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO session_votes (session_id, user_id, restaurant_id, liked, created_at)
		SELECT ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM sessions WHERE id = ? AND status = 'MATCHING')
		  AND EXISTS (SELECT 1 FROM session_participants WHERE session_id = ? AND user_id = ?)
		  AND EXISTS (SELECT 1 FROM session_restaurants WHERE session_id = ? AND restaurant_id = ?)
	`, sessionID, userID, restaurantID, liked, at,
		sessionID, sessionID, userID, sessionID, restaurantID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to record vote: %w", mapError(err))
	}
	if err := noMatchIfZero(res); err != nil {
		return err
	}

	positive := 0
	if liked {
		positive = 1
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE session_restaurants
		SET total_votes = total_votes + 1,
		    positive_votes = positive_votes + ?,
		    score = CAST(positive_votes + ? AS REAL) / (total_votes + 1)
		WHERE session_id = ? AND restaurant_id = ?
	`, positive, positive, sessionID, restaurantID)
	if err != nil {
		return fmt.Errorf("failed to update tally: %w", mapError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", mapError(err))
	}
	return nil
}

// HasVote reports whether the (session, user, restaurant) vote exists.
func (r *SessionRepository) HasVote(ctx context.Context, sessionID, userID, restaurantID string) (bool, error) {
	var voted bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM session_votes
			WHERE session_id = ? AND user_id = ? AND restaurant_id = ?
		)
	`, sessionID, userID, restaurantID).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", mapError(err))
	}
	return voted, nil
}

// MarkDone flags the participant as done swiping. Idempotent while the
// session is MATCHING.
func (r *SessionRepository) MarkDone(ctx context.Context, sessionID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE session_participants SET done_swiping = 1
		WHERE session_id = ? AND user_id = ?
		  AND EXISTS (SELECT 1 FROM sessions WHERE id = ? AND status = 'MATCHING')
	`, sessionID, userID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to mark done: %w", mapError(err))
	}
	return noMatchIfZero(res)
}

// SetFinalSelection stamps the winner once; later calls are no-ops so the
// first computed result sticks.
func (r *SessionRepository) SetFinalSelection(ctx context.Context, sessionID, restaurantID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET final_restaurant_id = ?, selected_at = ?
		WHERE id = ? AND final_restaurant_id IS NULL
	`, restaurantID, at, sessionID)
	if err != nil {
		return fmt.Errorf("failed to set final selection: %w", mapError(err))
	}
	return nil
}

// TopRestaurant returns the current winner: score, then positive votes,
// then total votes, then candidate order.
func (r *SessionRepository) TopRestaurant(ctx context.Context, sessionID string) (*session.Tally, error) {
	var t session.Tally
	err := r.db.QueryRowContext(ctx, `
		SELECT restaurant_id, position, total_votes, positive_votes, score
		FROM session_restaurants
		WHERE session_id = ?
		ORDER BY score DESC, positive_votes DESC, total_votes DESC, position ASC
		LIMIT 1
	`, sessionID).Scan(&t.RestaurantID, &t.Position, &t.TotalVotes, &t.PositiveVotes, &t.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get top restaurant: %w", mapError(err))
	}
	return &t, nil
}

// ListExpiring returns started sessions and their completion deadlines.
func (r *SessionRepository) ListExpiring(ctx context.Context) ([]session.ExpiryRef, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, expires_at FROM sessions WHERE status = 'MATCHING'
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring sessions: %w", mapError(err))
	}
	defer rows.Close()

	var refs []session.ExpiryRef
	for rows.Next() {
		var ref session.ExpiryRef
		if err := rows.Scan(&ref.SessionID, &ref.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan expiry: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expiring sessions: %w", mapError(err))
	}
	return refs, nil
}

func (r *SessionRepository) loadParticipants(ctx context.Context, sess *session.Session) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, done_swiping, joined_at
		FROM session_participants WHERE session_id = ?
		ORDER BY joined_at ASC
	`, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to load participants: %w", mapError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var p session.Participant
		if err := rows.Scan(&p.UserID, &p.DoneSwiping, &p.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		p.Preferences = []session.Preference{}
		sess.Participants = append(sess.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", mapError(err))
	}

	return r.loadPreferences(ctx, sess)
}

func (r *SessionRepository) loadPreferences(ctx context.Context, sess *session.Session) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, restaurant_id, liked, created_at
		FROM session_votes WHERE session_id = ?
		ORDER BY created_at ASC
	`, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to load votes: %w", mapError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var pref session.Preference
		if err := rows.Scan(&userID, &pref.RestaurantID, &pref.Liked, &pref.Timestamp); err != nil {
			return fmt.Errorf("failed to scan vote: %w", err)
		}
		// Votes from departed participants stay in the tallies but have no
		// participant entry to attach to.
		if p := sess.Participant(userID); p != nil {
			p.Preferences = append(p.Preferences, pref)
		}
	}
	return rows.Err()
}

func (r *SessionRepository) loadInvitations(ctx context.Context, sess *session.Session) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM session_invitations WHERE session_id = ?
		ORDER BY invited_at ASC
	`, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to load invitations: %w", mapError(err))
	}
	defer rows.Close()

	sess.PendingInvitations = []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan invitation: %w", err)
		}
		sess.PendingInvitations = append(sess.PendingInvitations, userID)
	}
	return rows.Err()
}

func (r *SessionRepository) loadTallies(ctx context.Context, sess *session.Session) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT restaurant_id, position, total_votes, positive_votes, score
		FROM session_restaurants WHERE session_id = ?
		ORDER BY position ASC
	`, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to load tallies: %w", mapError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var t session.Tally
		if err := rows.Scan(&t.RestaurantID, &t.Position, &t.TotalVotes, &t.PositiveVotes, &t.Score); err != nil {
			return fmt.Errorf("failed to scan tally: %w", err)
		}
		sess.Restaurants = append(sess.Restaurants, t)
	}
	return rows.Err()
}

func noMatchIfZero(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNoMatch
	}
	return nil
}
