package randomness

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"sync"
	"time"
)

// Source is one strategy for producing randomness. Sources may fail;
// the Service absorbs failures by falling back.
type Source interface {
	RollDice(ctx context.Context) (int, error)
	RandomBytes(ctx context.Context, n int) ([]byte, error)
}

// CryptoSource draws from the operating system's entropy pool. This is
// the higher-trust primary source.
type CryptoSource struct{}

func NewCryptoSource() *CryptoSource { return &CryptoSource{} }

func (s *CryptoSource) RollDice(ctx context.Context) (int, error) {
	buf, err := s.RandomBytes(ctx, 4)
	if err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(buf)
	dice1 := int(v%6) + 1
	dice2 := int((v>>8)%6) + 1
	return dice1 + dice2, nil
}

func (s *CryptoSource) RandomBytes(ctx context.Context, n int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// PseudoSource is the non-cryptographic fallback.
type PseudoSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

func NewPseudoSource() *PseudoSource {
	return &PseudoSource{rng: mrand.New(mrand.NewSource(time.Now().UnixNano()))}
}

func (s *PseudoSource) RollDice(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(6) + 1 + s.rng.Intn(6) + 1, nil
}

func (s *PseudoSource) RandomBytes(ctx context.Context, n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, n)
	s.rng.Read(buf)
	return buf, nil
}
