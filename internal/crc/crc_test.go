package crc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestU8(t *testing.T) {
	assert.Equal(t, uint16(0), U8(0, 0))

	assert.Equal(t, uint16(0xc0c1), U8(1, 0))
}

func TestU16_LowByteFirst(t *testing.T) {
	v := uint16(0x1234)
	want := U8(0x12, U8(0x34, 0))
	assert.Equal(t, want, U16(v, 0))
}

func TestU32_LowHalfFirst(t *testing.T) {
	v := uint32(0xdeadbeef)
	want := U16(0xdead, U16(0xbeef, 0x55aa))
	assert.Equal(t, want, U32(v, 0x55aa))
}

func TestS16_MatchesU16(t *testing.T) {
	for _, v := range []int16{0, 1, -1, 0x7fff, -0x8000, 0x1234} {
		assert.Equal(t, U16(uint16(v), 0xffff), S16(v, 0xffff), "v=%d", v)
	}
}

func TestFold_IsOrderDependent(t *testing.T) {
	ab := U16(2, U16(1, 0))
	ba := U16(1, U16(2, 0))
	assert.NotEqual(t, ab, ba)
}

// The seed checksums printed by the reference harness identify the standard
// run configurations; they are a compact end-to-end vector for the fold.
func TestSeedChecksumVectors(t *testing.T) {
	tests := []struct {
		name                      string
		seed1, seed2, seed3, size int16
		want                      uint16
	}{
		{"performance 2k", 0, 0, 0x66, 666, 0xe9f5},
		{"validation 2k", 0x3415, 0x3415, 0x66, 666, 0x18f2},
		{"performance 6k", 0, 0, 0x66, 2000, 0x8a02},
		{"validation 6k", 0x3415, 0x3415, 0x66, 2000, 0x7b05},
		{"profile", 8, 8, 8, 400, 0x4eaf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c uint16
			c = S16(tt.seed1, c)
			c = S16(tt.seed2, c)
			c = S16(tt.seed3, c)
			c = S16(tt.size, c)
			assert.Equal(t, tt.want, c)
		})
	}
}
