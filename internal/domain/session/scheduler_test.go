package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/biteswipe/backend/internal/domain/session"
	"github.com/biteswipe/backend/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func waitForFire(t *testing.T, fired <-chan string, want string) {
	t.Helper()
	select {
	case got := <-fired:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("timer for %s never fired", want)
	}
}

func TestExpiryScheduler_ArmFires(t *testing.T) {
	repo := &mocks.SessionRepository{}
	fired := make(chan string, 1)
	repo.On("ForceComplete", mock.Anything, "s1").Run(func(args mock.Arguments) {
		fired <- args.String(1)
	}).Return(nil)

	sched := session.NewExpiryScheduler(repo, nil)
	sched.Arm("s1", 10*time.Millisecond)

	waitForFire(t, fired, "s1")
}

func TestExpiryScheduler_CancelPreventsFire(t *testing.T) {
	repo := &mocks.SessionRepository{}

	sched := session.NewExpiryScheduler(repo, nil)
	sched.Arm("s1", 20*time.Millisecond)
	sched.Cancel("s1")

	time.Sleep(100 * time.Millisecond)
	repo.AssertNotCalled(t, "ForceComplete", mock.Anything, "s1")
}

func TestExpiryScheduler_ArmReplacesTimer(t *testing.T) {
	repo := &mocks.SessionRepository{}
	fired := make(chan string, 2)
	repo.On("ForceComplete", mock.Anything, "s1").Run(func(args mock.Arguments) {
		fired <- args.String(1)
	}).Return(nil)

	sched := session.NewExpiryScheduler(repo, nil)
	sched.Arm("s1", 10*time.Millisecond)
	sched.Arm("s1", 30*time.Millisecond)

	waitForFire(t, fired, "s1")
	time.Sleep(50 * time.Millisecond)
	repo.AssertNumberOfCalls(t, "ForceComplete", 1)
}

func TestExpiryScheduler_CancelAfterFireIsNoOp(t *testing.T) {
	repo := &mocks.SessionRepository{}
	fired := make(chan string, 1)
	repo.On("ForceComplete", mock.Anything, "s1").Run(func(args mock.Arguments) {
		fired <- args.String(1)
	}).Return(nil)

	sched := session.NewExpiryScheduler(repo, nil)
	sched.Arm("s1", 5*time.Millisecond)
	waitForFire(t, fired, "s1")

	sched.Cancel("s1")
}

func TestExpiryScheduler_RearmOverdueFiresImmediately(t *testing.T) {
	repo := &mocks.SessionRepository{}
	repo.On("ListExpiring", mock.Anything).Return([]session.ExpiryRef{
		{SessionID: "overdue", ExpiresAt: time.Now().Add(-time.Minute)},
	}, nil)
	fired := make(chan string, 1)
	repo.On("ForceComplete", mock.Anything, "overdue").Run(func(args mock.Arguments) {
		fired <- args.String(1)
	}).Return(nil)

	sched := session.NewExpiryScheduler(repo, nil)
	require.NoError(t, sched.Rearm(context.Background()))

	waitForFire(t, fired, "overdue")
}

func TestExpiryScheduler_RearmFutureDeadline(t *testing.T) {
	repo := &mocks.SessionRepository{}
	repo.On("ListExpiring", mock.Anything).Return([]session.ExpiryRef{
		{SessionID: "pending", ExpiresAt: time.Now().Add(40 * time.Millisecond)},
	}, nil)
	fired := make(chan string, 1)
	repo.On("ForceComplete", mock.Anything, "pending").Run(func(args mock.Arguments) {
		fired <- args.String(1)
	}).Return(nil)

	sched := session.NewExpiryScheduler(repo, nil)
	require.NoError(t, sched.Rearm(context.Background()))

	repo.AssertNotCalled(t, "ForceComplete", mock.Anything, "pending")
	waitForFire(t, fired, "pending")
}
