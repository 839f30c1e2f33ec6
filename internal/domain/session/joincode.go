package session

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// joinCodeAlphabet omits characters that read ambiguously on a shared
// screen (I, L, O, 0, 1).
const joinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	joinCodeLength      = 5
	maxJoinCodeAttempts = 5
)

// CodeIndex checks whether a join code is in use by a non-completed session.
type CodeIndex interface {
	JoinCodeTaken(ctx context.Context, code string) (bool, error)
}

// JoinCodeGenerator produces short unique human-shareable session codes.
type JoinCodeGenerator struct {
	codes CodeIndex
}

// NewJoinCodeGenerator creates a generator backed by the given code index.
func NewJoinCodeGenerator(codes CodeIndex) *JoinCodeGenerator {
	return &JoinCodeGenerator{codes: codes}
}

// Generate returns a code unused by any non-completed session, retrying on
// collision up to a fixed bound before failing with ErrJoinCodeExhausted.
func (g *JoinCodeGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		code, err := randomJoinCode()
		if err != nil {
			return "", fmt.Errorf("generating join code: %w", err)
		}
		taken, err := g.codes.JoinCodeTaken(ctx, code)
		if err != nil {
			return "", fmt.Errorf("checking join code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrJoinCodeExhausted
}

func randomJoinCode() (string, error) {
	buf := make([]byte, joinCodeLength)
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
