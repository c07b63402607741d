package levels

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// Source is the randomness used for the grumpy cat top-up.
type Source interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// xorshift is a small deterministic generator (xorshift64).
type xorshift struct {
	state uint64
}

// NewSeededSource returns a deterministic Source. Equal seeds give equal
// sequences.
func NewSeededSource(seed uint64) Source {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &xorshift{state: seed}
}

func (r *xorshift) next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

func (r *xorshift) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}

// NewSource returns a Source seeded from crypto/rand, so every install
// draws its own extra cats.
func NewSource() (Source, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSeededSource(seed), nil
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("levels: read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
