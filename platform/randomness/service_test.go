package randomness

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenSource struct{}

func (brokenSource) RollDice(context.Context) (int, error) {
	return 0, errors.New("hardware entropy unavailable")
}

func (brokenSource) RandomBytes(context.Context, int) ([]byte, error) {
	return nil, errors.New("hardware entropy unavailable")
}

func TestRollDiceBounds(t *testing.T) {
	svc := NewService(NewCryptoSource(), NewPseudoSource())
	for i := 0; i < 200; i++ {
		total, err := svc.RollDice(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, 2)
		assert.LessOrEqual(t, total, 12)
	}
}

func TestFallbackOnPrimaryFailure(t *testing.T) {
	svc := NewService(brokenSource{}, NewPseudoSource())

	total, err := svc.RollDice(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 2)
	assert.LessOrEqual(t, total, 12)

	_, err = svc.GameSeed(context.Background(), "game1")
	assert.NoError(t, err)
}

func TestAllSourcesFailed(t *testing.T) {
	svc := NewService(brokenSource{}, brokenSource{})

	_, err := svc.RollDice(context.Background())
	assert.ErrorIs(t, err, ErrAllSourcesFailed)

	_, err = svc.GameSeed(context.Background(), "game1")
	assert.ErrorIs(t, err, ErrAllSourcesFailed)
}

func TestGameSeedCachedPerGame(t *testing.T) {
	svc := NewService(NewCryptoSource(), NewPseudoSource())
	ctx := context.Background()

	first, err := svc.GameSeed(ctx, "game1")
	require.NoError(t, err)
	assert.Len(t, first, 64)

	again, err := svc.GameSeed(ctx, "game1")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	other, err := svc.GameSeed(ctx, "game2")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestSeedPrefixHidesSeed(t *testing.T) {
	svc := NewService(NewCryptoSource(), NewPseudoSource())
	ctx := context.Background()

	prefix, err := svc.SeedPrefix(ctx, "game1")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(prefix, "..."))
	assert.Len(t, prefix, seedPrefixLen+3)

	seed, ok := svc.RevealSeed("game1")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(seed, strings.TrimSuffix(prefix, "...")))
}

func TestRevealAndForget(t *testing.T) {
	svc := NewService(NewCryptoSource(), NewPseudoSource())

	_, ok := svc.RevealSeed("game1")
	assert.False(t, ok)

	_, err := svc.GameSeed(context.Background(), "game1")
	require.NoError(t, err)

	_, ok = svc.RevealSeed("game1")
	assert.True(t, ok)

	svc.Forget("game1")
	_, ok = svc.RevealSeed("game1")
	assert.False(t, ok)
}

func TestVerifiableRollValidates(t *testing.T) {
	svc := NewService(NewCryptoSource(), NewPseudoSource())
	ctx := context.Background()
	players := []string{"bob", "alice"}

	roll, err := svc.VerifiableRoll(ctx, "game1", 1, players)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, roll.Total, 2)
	assert.LessOrEqual(t, roll.Total, 12)
	assert.Equal(t, 1, roll.Round)
	assert.Len(t, roll.Proof, 64)

	seed, ok := svc.RevealSeed("game1")
	require.True(t, ok)

	assert.True(t, ValidateRoll("game1", 1, players, roll.Timestamp, roll.Proof, seed))
	// Player id order must not matter.
	assert.True(t, ValidateRoll("game1", 1, []string{"alice", "bob"}, roll.Timestamp, roll.Proof, seed))

	// Any changed input breaks the proof.
	assert.False(t, ValidateRoll("game1", 2, players, roll.Timestamp, roll.Proof, seed))
	assert.False(t, ValidateRoll("game2", 1, players, roll.Timestamp, roll.Proof, seed))
	assert.False(t, ValidateRoll("game1", 1, []string{"alice"}, roll.Timestamp, roll.Proof, seed))
	assert.False(t, ValidateRoll("game1", 1, players, roll.Timestamp+1, roll.Proof, seed))
	assert.False(t, ValidateRoll("game1", 1, players, roll.Timestamp, roll.Proof, "0000"))
}

func TestProofDeterminism(t *testing.T) {
	a := computeProof("seed", "game1", 3, []string{"p2", "p1"}, 1700000000)
	b := computeProof("seed", "game1", 3, []string{"p1", "p2"}, 1700000000)
	assert.Equal(t, a, b)

	c := computeProof("other-seed", "game1", 3, []string{"p1", "p2"}, 1700000000)
	assert.NotEqual(t, a, c)

	total := totalFromProof(a)
	assert.GreaterOrEqual(t, total, 2)
	assert.LessOrEqual(t, total, 12)
	assert.Equal(t, total, totalFromProof(a))
}
