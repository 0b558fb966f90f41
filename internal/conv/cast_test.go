//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToInt16(t *testing.T) {
	t.Run("valid bounds", func(t *testing.T) {
		got, err := IntToInt16(math.MaxInt16)
		assert.NoError(t, err)
		assert.Equal(t, int16(math.MaxInt16), got)

		got, err = IntToInt16(math.MinInt16)
		assert.NoError(t, err)
		assert.Equal(t, int16(math.MinInt16), got)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := IntToInt16(math.MaxInt16 + 1)
		assert.Error(t, err)
	})

	t.Run("invalid too small", func(t *testing.T) {
		_, err := IntToInt16(math.MinInt16 - 1)
		assert.Error(t, err)
	})
}

func TestIntToInt32(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := IntToInt32(-2000)
		assert.NoError(t, err)
		assert.Equal(t, int32(-2000), got)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := IntToInt32(math.MaxInt32 + 1)
		assert.Error(t, err)
	})
}

func TestIntToUint32(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint32(0)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.Error(t, err)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := IntToUint32(math.MaxUint32 + 1)
		assert.Error(t, err)
	})
}

func TestInt64ToInt32(t *testing.T) {
	got, err := Int64ToInt32(0x3415)
	assert.NoError(t, err)
	assert.Equal(t, int32(0x3415), got)

	_, err = Int64ToInt32(math.MaxInt64)
	assert.Error(t, err)

	_, err = Int64ToInt32(math.MinInt32 - 1)
	assert.Error(t, err)
}

func TestUint64ToInt(t *testing.T) {
	got, err := Uint64ToInt(2000)
	assert.NoError(t, err)
	assert.Equal(t, 2000, got)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.Error(t, err)
}
