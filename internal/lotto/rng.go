package lotto

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"
)

// RandomSource yields uniform integers in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type cryptoRNG struct {
	entropy io.Reader
}

func (c cryptoRNG) IntN(n int) int {
	var buf [8]byte
	// rejection sampling keeps the result unbiased
	bound := uint64(n)
	limit := ^uint64(0) - (^uint64(0) % bound)
	for {
		if _, err := io.ReadFull(c.entropy, buf[:]); err != nil {
			panic(fmt.Sprintf("lotto: crypto/rand unavailable: %v", err))
		}
		if u := binary.BigEndian.Uint64(buf[:]); u < limit {
			return int(u % bound)
		}
	}
}

// DefaultRNG returns the non-deterministic source used in production.
func DefaultRNG() RandomSource { return cryptoRNG{entropy: cryptoRand.Reader} }

type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a reproducible source, for tests and replays.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }
