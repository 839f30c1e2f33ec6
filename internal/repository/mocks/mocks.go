package mocks

import (
	"context"
	"time"

	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/biteswipe/backend/internal/domain/session"
	"github.com/biteswipe/backend/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// SessionRepository is a mock for session.Repository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) GetByJoinCode(ctx context.Context, code string) (*session.Session, error) {
	args := m.Called(ctx, code)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) JoinCodeTaken(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *SessionRepository) ListByUser(ctx context.Context, userID string) ([]session.Session, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]session.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Start(ctx context.Context, sessionID, creatorID string, expiresAt time.Time) error {
	args := m.Called(ctx, sessionID, creatorID, expiresAt)
	return args.Error(0)
}

func (m *SessionRepository) ForceComplete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *SessionRepository) CompleteIfAllDone(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *SessionRepository) AddInvitation(ctx context.Context, sessionID, userID string, invitedAt time.Time) error {
	args := m.Called(ctx, sessionID, userID, invitedAt)
	return args.Error(0)
}

func (m *SessionRepository) AcceptInvitation(ctx context.Context, sessionID, userID string, joinedAt time.Time) error {
	args := m.Called(ctx, sessionID, userID, joinedAt)
	return args.Error(0)
}

func (m *SessionRepository) RemoveInvitation(ctx context.Context, sessionID, userID string) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

func (m *SessionRepository) RemoveParticipant(ctx context.Context, sessionID, userID string) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

func (m *SessionRepository) RecordVote(ctx context.Context, sessionID, userID, restaurantID string, liked bool, at time.Time) error {
	args := m.Called(ctx, sessionID, userID, restaurantID, liked, at)
	return args.Error(0)
}

func (m *SessionRepository) HasVote(ctx context.Context, sessionID, userID, restaurantID string) (bool, error) {
	args := m.Called(ctx, sessionID, userID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *SessionRepository) MarkDone(ctx context.Context, sessionID, userID string) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

func (m *SessionRepository) SetFinalSelection(ctx context.Context, sessionID, restaurantID string, at time.Time) error {
	args := m.Called(ctx, sessionID, restaurantID, at)
	return args.Error(0)
}

func (m *SessionRepository) TopRestaurant(ctx context.Context, sessionID string) (*session.Tally, error) {
	args := m.Called(ctx, sessionID)
	if tally, ok := args.Get(0).(*session.Tally); ok {
		return tally, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) ListExpiring(ctx context.Context) ([]session.ExpiryRef, error) {
	args := m.Called(ctx)
	if refs, ok := args.Get(0).([]session.ExpiryRef); ok {
		return refs, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserDirectory is a mock for session.UserDirectory.
type UserDirectory struct {
	mock.Mock
}

func (m *UserDirectory) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *UserDirectory) Resolve(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// RestaurantSource is a mock for session.RestaurantSource.
type RestaurantSource struct {
	mock.Mock
}

func (m *RestaurantSource) FindCandidates(ctx context.Context, loc restaurant.Location) ([]restaurant.Restaurant, error) {
	args := m.Called(ctx, loc)
	if list, ok := args.Get(0).([]restaurant.Restaurant); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RestaurantSource) Get(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*restaurant.Restaurant); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RestaurantSource) GetByIDs(ctx context.Context, ids []string) ([]restaurant.Restaurant, error) {
	args := m.Called(ctx, ids)
	if list, ok := args.Get(0).([]restaurant.Restaurant); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Notifier is a mock for session.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, userID, title, body string) {
	m.Called(ctx, userID, title, body)
}

// Scheduler is a mock for session.Scheduler.
type Scheduler struct {
	mock.Mock
}

func (m *Scheduler) Arm(sessionID string, d time.Duration) {
	m.Called(sessionID, d)
}

func (m *Scheduler) Cancel(sessionID string) {
	m.Called(sessionID)
}

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) SetFCMToken(ctx context.Context, id, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

// RestaurantRepository is a mock for restaurant.Repository.
type RestaurantRepository struct {
	mock.Mock
}

func (m *RestaurantRepository) UpsertByPlaceID(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, r)
	if stored, ok := args.Get(0).(*restaurant.Restaurant); ok {
		return stored, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RestaurantRepository) Get(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*restaurant.Restaurant); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RestaurantRepository) GetByIDs(ctx context.Context, ids []string) ([]restaurant.Restaurant, error) {
	args := m.Called(ctx, ids)
	if list, ok := args.Get(0).([]restaurant.Restaurant); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// PlacesClient is a mock for restaurant.PlacesClient.
type PlacesClient struct {
	mock.Mock
}

func (m *PlacesClient) SearchNearby(ctx context.Context, loc restaurant.Location) ([]restaurant.Place, error) {
	args := m.Called(ctx, loc)
	if list, ok := args.Get(0).([]restaurant.Place); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
