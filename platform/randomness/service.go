package randomness

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blockopoly/blockopoly-backend/app/models"
)

const seedPrefixLen = 16

var ErrAllSourcesFailed = errors.New("randomness: all sources failed")

// Service tries the primary source first and falls back on failure.
// Failures never escape: only total failure of both sources errors.
// It also derives verifiable rolls: a cached per-game seed keys an HMAC
// over the canonical roll input, and the dice total is read off the
// proof, so any party can audit a roll after the seed is revealed.
type Service struct {
	primary  Source
	fallback Source
	log      *logrus.Entry

	mu    sync.Mutex
	seeds map[string]string
}

func NewService(primary, fallback Source) *Service {
	return &Service{
		primary:  primary,
		fallback: fallback,
		log:      logrus.WithField("component", "randomness"),
		seeds:    make(map[string]string),
	}
}

// RollDice produces a plain two-die total with no proof attached.
func (s *Service) RollDice(ctx context.Context) (int, error) {
	total, err := s.primary.RollDice(ctx)
	if err == nil {
		return total, nil
	}
	s.log.WithError(err).Warn("primary randomness source failed, using fallback")
	total, err = s.fallback.RollDice(ctx)
	if err != nil {
		return 0, ErrAllSourcesFailed
	}
	return total, nil
}

func (s *Service) randomBytes(ctx context.Context, n int) ([]byte, error) {
	buf, err := s.primary.RandomBytes(ctx, n)
	if err == nil {
		return buf, nil
	}
	s.log.WithError(err).Warn("primary randomness source failed, using fallback")
	buf, err = s.fallback.RandomBytes(ctx, n)
	if err != nil {
		return nil, ErrAllSourcesFailed
	}
	return buf, nil
}

// GameSeed returns the per-game seed, generating and caching it on first
// use: SHA-256 over fresh randomness concatenated with the hashed game id.
func (s *Service) GameSeed(ctx context.Context, gameId string) (string, error) {
	s.mu.Lock()
	seed, ok := s.seeds[gameId]
	s.mu.Unlock()
	if ok {
		return seed, nil
	}

	fresh, err := s.randomBytes(ctx, 32)
	if err != nil {
		return "", err
	}
	idHash := sha256.Sum256([]byte(gameId))
	combined := sha256.Sum256(append(fresh, idHash[:]...))
	seed = hex.EncodeToString(combined[:])

	s.mu.Lock()
	s.seeds[gameId] = seed
	s.mu.Unlock()
	return seed, nil
}

// SeedPrefix is the only part of the seed exposed before game end.
func (s *Service) SeedPrefix(ctx context.Context, gameId string) (string, error) {
	seed, err := s.GameSeed(ctx, gameId)
	if err != nil {
		return "", err
	}
	return seed[:seedPrefixLen] + "...", nil
}

// RevealSeed hands out the full seed for post-hoc audit. Call only after
// the game has ended.
func (s *Service) RevealSeed(gameId string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seed, ok := s.seeds[gameId]
	return seed, ok
}

func (s *Service) Forget(gameId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seeds, gameId)
}

// rollInput is the canonical JSON the proof commits to. Field order is
// fixed and player ids are sorted.
type rollInput struct {
	GameId    string   `json:"gameId"`
	Round     int      `json:"round"`
	PlayerIds []string `json:"playerIds"`
	Timestamp int64    `json:"timestamp"`
}

func computeProof(seed string, gameId string, round int, playerIds []string, timestamp int64) string {
	sorted := append([]string(nil), playerIds...)
	sort.Strings(sorted)
	input, _ := json.Marshal(rollInput{
		GameId:    gameId,
		Round:     round,
		PlayerIds: sorted,
		Timestamp: timestamp,
	})
	mac := hmac.New(sha256.New, []byte(seed))
	mac.Write(input)
	return hex.EncodeToString(mac.Sum(nil))
}

func totalFromProof(proof string) int {
	raw, _ := hex.DecodeString(proof[:8])
	return int(binary.BigEndian.Uint32(raw))%11 + 2
}

// VerifiableRoll derives a dice total deterministically from the HMAC
// proof for this (game, round, players) tuple. Implements the engine's
// DiceRoller.
func (s *Service) VerifiableRoll(ctx context.Context, gameId string, round int, playerIds []string) (models.VerifiableRoll, error) {
	seed, err := s.GameSeed(ctx, gameId)
	if err != nil {
		return models.VerifiableRoll{}, err
	}
	timestamp := time.Now().Unix()
	proof := computeProof(seed, gameId, round, playerIds, timestamp)
	return models.VerifiableRoll{
		Total:      totalFromProof(proof),
		Round:      round,
		Proof:      proof,
		SeedPrefix: seed[:seedPrefixLen] + "...",
		Timestamp:  timestamp,
	}, nil
}

// ValidateRoll recomputes the proof from the revealed seed and the
// roll's recorded inputs. Anyone can run this without trusting the
// server's live process.
func ValidateRoll(gameId string, round int, playerIds []string, timestamp int64, proof, seed string) bool {
	return hmac.Equal(
		[]byte(computeProof(seed, gameId, round, playerIds, timestamp)),
		[]byte(proof),
	)
}
