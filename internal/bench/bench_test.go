package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/corebench/internal/mem"
)

func newContext(t testing.TB, cfg Config) *Context {
	t.Helper()
	block := mem.AllocAligned(Footprint(cfg.Size, cfg.Algorithms))
	c, err := New(block, cfg)
	require.NoError(t, err)
	return c
}

var (
	performance = Seeds{0, 0, 0x66}
	validation  = Seeds{0x3415, 0x3415, 0x66}
	profile     = Seeds{8, 8, 8}
)

func TestIterate_KnownChecksums(t *testing.T) {
	tests := []struct {
		name   string
		seeds  Seeds
		size   int
		list   uint16
		matrix uint16
		state  uint16
	}{
		{"2K performance", performance, 666, 0xe714, 0x1fd7, 0x8e3a},
		{"2K validation", validation, 666, 0xe3c1, 0x0747, 0x8d84},
		{"6K performance", performance, 2000, 0xd4b0, 0xbe52, 0x5e47},
		{"6K validation", validation, 2000, 0x3340, 0x1199, 0x39bf},
		{"profile", profile, 400, 0x6a79, 0x5608, 0xe5a4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(t, Config{
				Seeds:      tt.seeds,
				Size:       tt.size,
				Algorithms: AllAlgorithms,
				Iterations: 1,
			})

			c.Iterate()
			sums := c.Checksums()

			assert.Equal(t, tt.list, sums.List, "list %#04x", sums.List)
			assert.Equal(t, tt.matrix, sums.Matrix, "matrix %#04x", sums.Matrix)
			assert.Equal(t, tt.state, sums.State, "state %#04x", sums.State)
			assert.Equal(t, sums.List, sums.CRC)
		})
	}
}

func TestIterate_FinalChecksum(t *testing.T) {
	tests := []struct {
		seeds      Seeds
		size       int
		iterations uint32
		final      uint16
	}{
		{performance, 666, 2, 0x72be},
		{performance, 666, 5, 0xf24c},
		{validation, 666, 2, 0xfe8c},
		{validation, 666, 5, 0x6751},
		{profile, 400, 2, 0x8420},
		{profile, 400, 5, 0xa77d},
	}

	for _, tt := range tests {
		c := newContext(t, Config{
			Seeds:      tt.seeds,
			Size:       tt.size,
			Algorithms: AllAlgorithms,
			Iterations: tt.iterations,
		})

		c.Iterate()
		assert.Equal(t, tt.final, c.Checksums().CRC, "%+v x%d", tt.seeds, tt.iterations)

		// Iterate starts over from reset checksums.
		c.Iterate()
		assert.Equal(t, tt.final, c.Checksums().CRC)
	}
}

func TestBenchList_Passes(t *testing.T) {
	c := newContext(t, Config{Seeds: performance, Size: 666, Algorithms: AllAlgorithms})

	assert.Equal(t, uint16(0xbf8a), c.BenchList(1))
	sums := c.Checksums()
	assert.Equal(t, uint16(0x8f84), sums.CRC)
	assert.Equal(t, uint16(0x1fd7), sums.Matrix)
	assert.Equal(t, uint16(0x8e3a), sums.State)

	// Without the value sort no kernel runs and the running crc holds.
	assert.Equal(t, uint16(0x8036), c.BenchList(-1))
	assert.Equal(t, uint16(0x8f84), c.Checksums().CRC)
}

func TestBenchList_RestoresList(t *testing.T) {
	for _, seeds := range []Seeds{performance, validation, profile} {
		c := newContext(t, Config{Seeds: seeds, Size: 666, Algorithms: AllAlgorithms, Iterations: 3})
		before := c.Snapshot()

		c.BenchList(1)
		assert.True(t, before.Equal(c.Snapshot()))
		c.BenchList(-1)
		assert.True(t, before.Equal(c.Snapshot()))

		c.Iterate()
		assert.True(t, before.Equal(c.Snapshot()))
		assert.NoError(t, c.Verify())
	}
}

func TestIterate_Deterministic(t *testing.T) {
	cfg := Config{Seeds: Seeds{0x1234, 0x1234, 0x40}, Size: 1000, Algorithms: AllAlgorithms, Iterations: 3}

	a := newContext(t, cfg)
	b := newContext(t, cfg)
	a.Iterate()
	b.Iterate()

	assert.Equal(t, a.Checksums(), b.Checksums())
}

func TestIterate_ZeroFinds(t *testing.T) {
	c := newContext(t, Config{Seeds: Seeds{0, 0, 0}, Size: 666, Algorithms: AllAlgorithms, Iterations: 1})
	before := c.Snapshot()

	c.Iterate()
	assert.True(t, before.Equal(c.Snapshot()))
}

func TestNew(t *testing.T) {
	t.Run("list required", func(t *testing.T) {
		_, err := New(make([]byte, 2000), Config{Size: 666, Algorithms: AlgMatrix | AlgState})
		assert.ErrorIs(t, err, ErrListRequired)
	})

	t.Run("short block", func(t *testing.T) {
		_, err := New(mem.AllocAligned(2000), Config{Size: 666, Algorithms: AllAlgorithms})
		assert.ErrorIs(t, err, ErrShortBlock)
	})

	t.Run("list only", func(t *testing.T) {
		c := newContext(t, Config{Seeds: performance, Size: 666, Algorithms: AlgList, Iterations: 2})

		assert.Equal(t, uint16(0xabcd), c.MatrixChecksum(0x11, 0xabcd))
		assert.Equal(t, uint16(0xabcd), c.StateChecksum(0x22, 0xabcd))

		c.Iterate()
		assert.Zero(t, c.Checksums().Matrix)
		assert.Zero(t, c.Checksums().State)
	})

	t.Run("arena stats", func(t *testing.T) {
		c := newContext(t, Config{Seeds: performance, Size: 666, Algorithms: AllAlgorithms})
		s := c.ArenaStats()
		assert.Equal(t, 31, s.Capacity)
		assert.Equal(t, 30, s.NodesUsed)
	})

	t.Run("set iterations", func(t *testing.T) {
		c := newContext(t, Config{Seeds: performance, Size: 666, Algorithms: AllAlgorithms})
		c.SetIterations(7)
		assert.Equal(t, uint32(7), c.Config().Iterations)
	})
}

func TestFootprint(t *testing.T) {
	assert.Equal(t, 668*2+666, Footprint(666, AllAlgorithms))
	assert.Equal(t, 6000, Footprint(2000, AllAlgorithms))
	assert.Equal(t, 666, Footprint(666, AlgList))
	assert.Equal(t, 0, Footprint(666, 0))
}

func TestAlgorithms(t *testing.T) {
	assert.Equal(t, 3, AllAlgorithms.Count())
	assert.Equal(t, 2, (AlgList | AlgState).Count())
	assert.True(t, AllAlgorithms.Has(AlgMatrix|AlgState))
	assert.False(t, AlgList.Has(AlgMatrix))
	assert.Equal(t, "list|matrix|state", AllAlgorithms.String())
	assert.Equal(t, "list|state", (AlgList | AlgState).String())
	assert.Equal(t, "none", Algorithms(0).String())
}

func BenchmarkIterate(b *testing.B) {
	c := newContext(b, Config{Seeds: performance, Size: 666, Algorithms: AllAlgorithms, Iterations: 1})

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Iterate()
	}
}
