// Package rng provides deterministic random number generation for the
// solver and the board randomizer.
//
// Each consumer derives a stage-specific seed from the master seed:
//
//	seed_stage = H(masterSeed, stageName)
//
// where H is SHA-256 and the first 8 bytes are used as the uint64 seed.
// Same inputs always produce the same sequence, and different stages get
// independent sequences, so a randomized solve or a random board is
// reproducible from its seed alone.
//
// RNG instances are not safe for concurrent use.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// RNG is a deterministic random source for one stage.
type RNG struct {
	seed   uint64
	stage  string
	source *rand.Rand
}

// New derives a stage-specific RNG from the master seed.
func New(masterSeed uint64, stage string) *RNG {
	h := sha256.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], masterSeed)
	h.Write(buf[:])
	h.Write([]byte(stage))

	sum := h.Sum(nil)
	derived := binary.BigEndian.Uint64(sum[:8])

	return &RNG{
		seed:   derived,
		stage:  stage,
		source: rand.New(rand.NewSource(int64(derived))),
	}
}

// Seed returns the derived seed, useful for logging which stream was used.
func (r *RNG) Seed() uint64 { return r.seed }

// Stage returns the stage name this RNG was created for.
func (r *RNG) Stage() string { return r.stage }

// Intn returns a pseudo-random integer in [0, n). It panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn argument must be positive")
	}
	return r.source.Intn(n)
}

// IntRange returns a pseudo-random integer in [min, max]. It panics if
// min > max.
func (r *RNG) IntRange(min, max int) int {
	if min > max {
		panic("rng: IntRange min must be <= max")
	}
	if min == max {
		return min
	}
	return min + r.source.Intn(max-min+1)
}

// Bool returns a pseudo-random boolean.
func (r *RNG) Bool() bool {
	return r.source.Intn(2) == 1
}

// Shuffle pseudo-randomizes the order of n elements.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.source.Shuffle(n, swap)
}
