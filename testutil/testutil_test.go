package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(4711)
	b := NewRNG(4711)

	assert.Equal(t, a.Seeds(8), b.Seeds(8))
	assert.Equal(t, int64(4711), a.Seed())
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(4711)
	first := rng.Int16()
	rng.Reset()
	assert.Equal(t, first, rng.Int16())
}

func TestRNG_BlockSize(t *testing.T) {
	rng := NewRNG(4711)
	for i := 0; i < 100; i++ {
		size := rng.BlockSize(120, 4000)
		assert.GreaterOrEqual(t, size, 120)
		assert.Less(t, size, 4000)
	}
}

func TestRNG_SeedsFindCount(t *testing.T) {
	for _, s := range NewRNG(1).Seeds(32) {
		assert.Positive(t, s[2])
	}
}

func TestCountingKernels(t *testing.T) {
	var k CountingKernels

	assert.Equal(t, k.MatrixChecksum(0x22, 0), k.MatrixChecksum(0x22, 0))
	assert.NotEqual(t, k.StateChecksum(0x22, 0), k.StateChecksum(0x33, 0))

	assert.Equal(t, int64(2), k.MatrixCalls.Load())
	assert.Equal(t, int64(2), k.StateCalls.Load())
	assert.Equal(t, int64(4), k.Calls())
}
