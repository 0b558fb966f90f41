package testutil

import (
	"math/rand"
	"sync"
	"sync/atomic"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test input
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int16 returns a pseudo-random int16 covering the full range.
func (r *RNG) Int16() int16 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int16(r.rand.Uint32()) //nolint:gosec // truncation intended
}

// BlockSize returns a pseudo-random block size in [minSize, maxSize).
func (r *RNG) BlockSize(minSize, maxSize int) int {
	return minSize + r.Intn(maxSize-minSize)
}

// Seeds returns n pseudo-random seed triples.
func (r *RNG) Seeds(n int) [][3]int16 {
	out := make([][3]int16, n)
	for i := range out {
		out[i] = [3]int16{r.Int16(), r.Int16(), int16(1 + r.Intn(0x100))} //nolint:gosec // < 0x101
	}
	return out
}

// CountingKernels is a deterministic kernel double. Each call returns a value
// derived from its operand and the incoming checksum and is counted.
type CountingKernels struct {
	MatrixCalls atomic.Int64
	StateCalls  atomic.Int64
}

// MatrixChecksum returns a matrix-like checksum and counts the call.
func (k *CountingKernels) MatrixChecksum(operand int16, crc uint16) uint16 {
	k.MatrixCalls.Add(1)
	return uint16(operand)*31 ^ crc ^ 0x1fd7 //nolint:gosec // wrap intended
}

// StateChecksum returns a state-like checksum and counts the call.
func (k *CountingKernels) StateChecksum(operand int16, crc uint16) uint16 {
	k.StateCalls.Add(1)
	return uint16(operand)*17 ^ crc ^ 0x8e3a //nolint:gosec // wrap intended
}

// Calls returns the total number of kernel invocations.
func (k *CountingKernels) Calls() int64 {
	return k.MatrixCalls.Load() + k.StateCalls.Load()
}
