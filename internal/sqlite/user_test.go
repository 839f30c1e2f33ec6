package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/biteswipe/backend/internal/domain/user"
	"github.com/biteswipe/backend/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	u := &user.User{
		ID:          "u1",
		Email:       "alice@example.com",
		DisplayName: "Alice",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, "Alice", got.DisplayName)
	require.Empty(t, got.FCMToken)

	got, err = repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &user.User{ID: "u1", Email: "alice@example.com", DisplayName: "Alice", CreatedAt: time.Now()}))
	err := repo.Create(ctx, &user.User{ID: "u2", Email: "alice@example.com", DisplayName: "Other Alice", CreatedAt: time.Now()})
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_SetFCMToken(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &user.User{ID: "u1", Email: "alice@example.com", DisplayName: "Alice", CreatedAt: time.Now()}))
	require.NoError(t, repo.SetFCMToken(ctx, "u1", "token-123"))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "token-123", got.FCMToken)

	require.ErrorIs(t, repo.SetFCMToken(ctx, "missing", "token-123"), repository.ErrNotFound)
}
