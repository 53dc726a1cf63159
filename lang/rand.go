package lang

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Rand is the source of randomness threaded through every roll.
//
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

const golden = 0x9e3779b97f4a7c15

// NewRand returns a deterministic PCG source for seed.
// It is the same source as NewStream(seed, 0).
func NewRand(seed int64) *rand.Rand {
	return NewStream(seed, 0)
}

// NewStream returns the deterministic source of stream n of seed. Each
// evaluation of a run can own a separate stream while one seed still
// reproduces the whole run.
func NewStream(seed int64, n int) *rand.Rand {
	s := uint64(seed)

	return rand.New(rand.NewPCG(s, s^(golden*uint64(n+1))))
}

// NewSeed returns a fresh non-zero seed from the operating system's entropy
// source.
func NewSeed() (int64, error) {
	var buf [8]byte

	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read seed: %w", err)
	}

	seed := int64(binary.LittleEndian.Uint64(buf[:]))
	if seed == 0 {
		seed = 1
	}

	return seed, nil
}

// newDefaultRand returns a source seeded from [NewSeed], falling back to the
// runtime's own seeding if entropy is unavailable.
func newDefaultRand() Rand {
	seed, err := NewSeed()
	if err != nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return NewRand(seed)
}
