package session_test

import (
	"context"
	"strings"
	"testing"

	"github.com/biteswipe/backend/internal/domain/session"
	"github.com/biteswipe/backend/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const joinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func TestJoinCodeGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SessionRepository{}
	repo.On("JoinCodeTaken", ctx, mock.AnythingOfType("string")).Return(false, nil)

	gen := session.NewJoinCodeGenerator(repo)

	code, err := gen.Generate(ctx)
	require.NoError(t, err)
	require.Len(t, code, 5)
	for _, r := range code {
		require.True(t, strings.ContainsRune(joinCodeAlphabet, r), "unexpected character %q", r)
	}
}

func TestJoinCodeGenerator_RetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SessionRepository{}
	repo.On("JoinCodeTaken", ctx, mock.AnythingOfType("string")).Return(true, nil).Once()
	repo.On("JoinCodeTaken", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	gen := session.NewJoinCodeGenerator(repo)

	code, err := gen.Generate(ctx)
	require.NoError(t, err)
	require.Len(t, code, 5)
	repo.AssertNumberOfCalls(t, "JoinCodeTaken", 2)
}

func TestJoinCodeGenerator_Exhaustion(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SessionRepository{}
	repo.On("JoinCodeTaken", ctx, mock.AnythingOfType("string")).Return(true, nil)

	gen := session.NewJoinCodeGenerator(repo)

	_, err := gen.Generate(ctx)
	require.ErrorIs(t, err, session.ErrJoinCodeExhausted)
	repo.AssertNumberOfCalls(t, "JoinCodeTaken", 5)
}

func TestJoinCodeGenerator_DistinctCodes(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SessionRepository{}
	repo.On("JoinCodeTaken", ctx, mock.AnythingOfType("string")).Return(false, nil)

	gen := session.NewJoinCodeGenerator(repo)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := gen.Generate(ctx)
		require.NoError(t, err)
		seen[code] = true
	}
	// 31^5 codes; 50 draws colliding would indicate a broken source.
	require.Greater(t, len(seen), 45)
}
