package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/biteswipe/backend/internal/repository"
	"github.com/google/uuid"
)

// Service handles user directory operations.
type Service struct {
	users  Repository
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(users Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, logger: logger}
}

// Create registers a new user. Email must be unique.
func (s *Service) Create(ctx context.Context, email, displayName string) (*User, error) {
	if email == "" || displayName == "" {
		return nil, ErrInvalidInput
	}

	u := &User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	s.logger.Info("user created", "user_id", u.ID)
	return u, nil
}

// Get returns the user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	u, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return u, nil
}

// GetByEmail returns the user registered under email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, ErrInvalidInput
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return u, nil
}

// UpdateFCMToken stores the user's push registration token.
func (s *Service) UpdateFCMToken(ctx context.Context, id, token string) (*User, error) {
	if id == "" || token == "" {
		return nil, ErrInvalidInput
	}
	if err := s.users.SetFCMToken(ctx, id, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating fcm token: %w", err)
	}
	return s.Get(ctx, id)
}

// Exists reports whether a user with the given ID is registered.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking user: %w", err)
	}
	return true, nil
}

// Resolve returns the user by ID, with ErrNotFound for unknown IDs. It
// satisfies the session service's user directory.
func (s *Service) Resolve(ctx context.Context, id string) (*User, error) {
	return s.Get(ctx, id)
}
