package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/biteswipe/backend/internal/domain/user"
	"github.com/biteswipe/backend/internal/repository"
)

// UserRepository implements user.Repository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user. A duplicate email is ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, fcm_token, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.DisplayName, nullable(u.FCMToken), u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, "email", email)
}

// SetFCMToken updates the user's push registration token.
func (r *UserRepository) SetFCMToken(ctx context.Context, id, token string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET fcm_token = ? WHERE id = ?
	`, token, id)
	if err != nil {
		return fmt.Errorf("failed to set fcm token: %w", mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*user.User, error) {
	var u user.User
	var token sql.NullString
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, email, display_name, fcm_token, created_at
		FROM users WHERE %s = ?
	`, column), value).Scan(&u.ID, &u.Email, &u.DisplayName, &token, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", mapError(err))
	}
	if token.Valid {
		u.FCMToken = token.String
	}
	return &u, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
