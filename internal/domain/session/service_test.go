package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/biteswipe/backend/internal/domain/session"
	"github.com/biteswipe/backend/internal/repository"
	"github.com/biteswipe/backend/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceMocks struct {
	sessions    *mocks.SessionRepository
	users       *mocks.UserDirectory
	restaurants *mocks.RestaurantSource
	notifier    *mocks.Notifier
	scheduler   *mocks.Scheduler
}

func newService(t *testing.T) (*session.Service, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		sessions:    &mocks.SessionRepository{},
		users:       &mocks.UserDirectory{},
		restaurants: &mocks.RestaurantSource{},
		notifier:    &mocks.Notifier{},
		scheduler:   &mocks.Scheduler{},
	}
	svc := session.NewService(m.sessions, m.users, m.restaurants, m.notifier, m.scheduler, nil)
	return svc, m
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	loc := restaurant.Location{Latitude: 49.26, Longitude: -123.24, Radius: 1000}
	candidates := []restaurant.Restaurant{
		{ID: "r1", Name: "First"},
		{ID: "r2", Name: "Second"},
	}

	m.users.On("Exists", ctx, "u1").Return(true, nil)
	m.restaurants.On("FindCandidates", ctx, loc).Return(candidates, nil)
	m.sessions.On("JoinCodeTaken", ctx, mock.Anything).Return(false, nil)
	m.sessions.On("Create", ctx, mock.Anything).Return(nil)

	sess, err := svc.Create(ctx, "u1", loc)
	require.NoError(t, err)
	require.Equal(t, session.StatusCreated, sess.Status)
	require.Equal(t, "u1", sess.CreatorID)
	require.Len(t, sess.Participants, 1)
	require.Equal(t, "u1", sess.Participants[0].UserID)
	require.Empty(t, sess.PendingInvitations)
	require.Len(t, sess.JoinCode, 5)
	require.Len(t, sess.Restaurants, 2)
	require.Equal(t, "r1", sess.Restaurants[0].RestaurantID)
	require.Equal(t, 0, sess.Restaurants[0].Position)
	require.Equal(t, 1, sess.Restaurants[1].Position)
}

func TestService_Create_CreatorNotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	m.users.On("Exists", ctx, "ghost").Return(false, nil)

	_, err := svc.Create(ctx, "ghost", restaurant.Location{})
	require.ErrorIs(t, err, session.ErrCreatorNotFound)
	m.restaurants.AssertNotCalled(t, "FindCandidates", mock.Anything, mock.Anything)
}

func TestService_Create_RetriesDuplicateJoinCode(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	m.users.On("Exists", ctx, "u1").Return(true, nil)
	m.restaurants.On("FindCandidates", ctx, mock.Anything).Return([]restaurant.Restaurant{}, nil)
	m.sessions.On("JoinCodeTaken", ctx, mock.Anything).Return(false, nil)
	// A concurrent creator wins the first code; the second draw succeeds.
	m.sessions.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate).Once()
	m.sessions.On("Create", ctx, mock.Anything).Return(nil).Once()

	sess, err := svc.Create(ctx, "u1", restaurant.Location{})
	require.NoError(t, err)
	require.NotEmpty(t, sess.JoinCode)
	m.sessions.AssertNumberOfCalls(t, "Create", 2)
}

func TestService_Start(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	started := &session.Session{ID: "s1", CreatorID: "u1", Status: session.StatusMatching}
	m.sessions.On("Start", ctx, "s1", "u1", mock.Anything).Return(nil)
	m.scheduler.On("Arm", "s1", 30*time.Minute).Return()
	m.sessions.On("Get", ctx, "s1").Return(started, nil)

	sess, err := svc.Start(ctx, "s1", "u1", 30*time.Minute)
	require.NoError(t, err)
	require.Equal(t, session.StatusMatching, sess.Status)
	m.scheduler.AssertCalled(t, "Arm", "s1", 30*time.Minute)
}

func TestService_Start_NotCreator(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	m.sessions.On("Start", ctx, "s1", "u2", mock.Anything).Return(repository.ErrNoMatch)
	m.sessions.On("Get", ctx, "s1").Return(&session.Session{
		ID: "s1", CreatorID: "u1", Status: session.StatusCreated,
	}, nil)

	_, err := svc.Start(ctx, "s1", "u2", time.Minute)
	require.ErrorIs(t, err, session.ErrNotCreator)
	m.scheduler.AssertNotCalled(t, "Arm", mock.Anything, mock.Anything)
}

func TestService_Start_InvalidState(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	m.sessions.On("Start", ctx, "s1", "u1", mock.Anything).Return(repository.ErrNoMatch)
	m.sessions.On("Get", ctx, "s1").Return(&session.Session{
		ID: "s1", CreatorID: "u1", Status: session.StatusMatching,
	}, nil)

	_, err := svc.Start(ctx, "s1", "u1", time.Minute)
	require.ErrorIs(t, err, session.ErrInvalidState)
}

func TestService_Start_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	m.sessions.On("Start", ctx, "missing", "u1", mock.Anything).Return(repository.ErrNoMatch)
	m.sessions.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.Start(ctx, "missing", "u1", time.Minute)
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestService_Result_NotReady(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	m.sessions.On("Get", ctx, "s1").Return(&session.Session{
		ID:     "s1",
		Status: session.StatusMatching,
		Participants: []session.Participant{
			{UserID: "u1", DoneSwiping: true},
			{UserID: "u2", DoneSwiping: false},
		},
	}, nil)

	_, err := svc.Result(ctx, "s1")
	require.ErrorIs(t, err, session.ErrSessionNotReady)
}

func TestService_Result_Completed(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	winner := &restaurant.Restaurant{ID: "r2", Name: "Winner"}

	m.sessions.On("Get", ctx, "s1").Return(&session.Session{
		ID:     "s1",
		Status: session.StatusCompleted,
	}, nil).Once()
	m.sessions.On("TopRestaurant", ctx, "s1").Return(&session.Tally{RestaurantID: "r2"}, nil)
	m.sessions.On("SetFinalSelection", ctx, "s1", "r2", mock.Anything).Return(nil)
	m.sessions.On("Get", ctx, "s1").Return(&session.Session{
		ID:     "s1",
		Status: session.StatusCompleted,
		FinalSelection: &session.FinalSelection{
			RestaurantID: "r2",
			SelectedAt:   time.Now(),
		},
	}, nil)
	m.restaurants.On("Get", ctx, "r2").Return(winner, nil)

	got, err := svc.Result(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "r2", got.ID)
}

func TestService_Result_AllDoneCompletes(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	m.sessions.On("Get", ctx, "s1").Return(&session.Session{
		ID:     "s1",
		Status: session.StatusMatching,
		Participants: []session.Participant{
			{UserID: "u1", DoneSwiping: true},
			{UserID: "u2", DoneSwiping: true},
		},
	}, nil).Once()
	m.sessions.On("CompleteIfAllDone", ctx, "s1").Return(true, nil)
	m.scheduler.On("Cancel", "s1").Return()
	m.sessions.On("TopRestaurant", ctx, "s1").Return(&session.Tally{RestaurantID: "r1"}, nil)
	m.sessions.On("SetFinalSelection", ctx, "s1", "r1", mock.Anything).Return(nil)
	m.sessions.On("Get", ctx, "s1").Return(&session.Session{
		ID:     "s1",
		Status: session.StatusCompleted,
		FinalSelection: &session.FinalSelection{
			RestaurantID: "r1",
			SelectedAt:   time.Now(),
		},
	}, nil)
	m.restaurants.On("Get", ctx, "r1").Return(&restaurant.Restaurant{ID: "r1"}, nil)

	got, err := svc.Result(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "r1", got.ID)
	m.scheduler.AssertCalled(t, "Cancel", "s1")
}

func TestService_Result_ReturnsStampedWinner(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	m.sessions.On("Get", ctx, "s1").Return(&session.Session{
		ID:     "s1",
		Status: session.StatusCompleted,
		FinalSelection: &session.FinalSelection{
			RestaurantID: "r9",
			SelectedAt:   time.Now(),
		},
	}, nil)
	m.restaurants.On("Get", ctx, "r9").Return(&restaurant.Restaurant{ID: "r9"}, nil)

	got, err := svc.Result(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "r9", got.ID)
	m.sessions.AssertNotCalled(t, "TopRestaurant", mock.Anything, mock.Anything)
}

func TestService_ListForUser(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	m.sessions.On("ListByUser", ctx, "u1").Return([]session.Session{
		{ID: "s2"}, {ID: "s1"},
	}, nil)

	sessions, err := svc.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, "s2", sessions[0].ID)
}
