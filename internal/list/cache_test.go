package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/corebench/internal/arena"
	"github.com/hupe1980/corebench/internal/crc"
	"github.com/hupe1980/corebench/testutil"
)

func TestComputeCached_Dispatch(t *testing.T) {
	tests := []struct {
		name   string
		data   uint16
		matrix int64
		state  int64
	}{
		{"selector 0 runs state", 0x2d28, 0, 1},
		{"selector 1 runs matrix", 0x2929, 1, 0},
		{"other selectors use raw data", 0x2d2d, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := &testutil.CountingKernels{}
			sums := &Checksums{}
			c := &Cache{Kernels: k, Sums: sums}
			p := arena.Payload{Data: tt.data}

			v := c.ComputeCached(&p)

			assert.Equal(t, tt.matrix, k.MatrixCalls.Load())
			assert.Equal(t, tt.state, k.StateCalls.Load())
			assert.GreaterOrEqual(t, v, int16(0))
			assert.LessOrEqual(t, v, int16(0x7f))
			assert.Equal(t, tt.data&0xff00, p.Data&0xff00)
			assert.Equal(t, uint16(0x80)|uint16(v), p.Data&0xff)
			assert.NotZero(t, sums.CRC)
		})
	}
}

func TestComputeCached_RawDataFold(t *testing.T) {
	sums := &Checksums{}
	c := &Cache{Kernels: &testutil.CountingKernels{}, Sums: sums}
	p := arena.Payload{Data: 0x2d2d}

	v := c.ComputeCached(&p)

	assert.Equal(t, int16(0x2d), v)
	assert.Equal(t, uint16(0x2dad), p.Data)
	assert.Equal(t, crc.U16(0x2d2d, 0), sums.CRC)
}

func TestComputeCached_StateStepClamped(t *testing.T) {
	var got int16
	k := kernelFunc{state: func(op int16, _ uint16) uint16 { got = op; return 1 }}
	c := &Cache{Kernels: k, Sums: &Checksums{}}

	// operand 0 replicates to 0x00, below the minimum step.
	p := arena.Payload{Data: 0x0000}
	c.ComputeCached(&p)
	assert.Equal(t, int16(0x22), got)

	// operand 0xa replicates to 0xaa.
	p = arena.Payload{Data: 0x5050}
	c.ComputeCached(&p)
	assert.Equal(t, int16(0xaa), got)
}

func TestComputeCached_Monotonic(t *testing.T) {
	k := &testutil.CountingKernels{}
	sums := &Checksums{}
	c := &Cache{Kernels: k, Sums: sums}
	p := arena.Payload{Data: 0x2929}

	first := c.ComputeCached(&p)
	crcAfter := sums.CRC
	data := p.Data

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.ComputeCached(&p))
	}
	assert.Equal(t, int64(1), k.Calls())
	assert.Equal(t, crcAfter, sums.CRC)
	assert.Equal(t, data, p.Data)
}

func TestChecksums_Latch(t *testing.T) {
	var s Checksums

	s.LatchMatrix(0)
	s.LatchMatrix(0x1fd7)
	s.LatchMatrix(0x1234)
	s.LatchState(0x8e3a)
	s.LatchState(0x4321)

	assert.Equal(t, uint16(0x1fd7), s.Matrix)
	assert.Equal(t, uint16(0x8e3a), s.State)

	s.Fold(1)
	assert.Equal(t, crc.U16(1, 0), s.CRC)

	s.Reset()
	assert.Equal(t, Checksums{}, s)
}

func TestCompare_EvaluatesLeftFirst(t *testing.T) {
	var order []uint16
	k := kernelFunc{
		state:  func(op int16, _ uint16) uint16 { order = append(order, uint16(op)); return 0x10 },
		matrix: func(op int16, _ uint16) uint16 { order = append(order, uint16(op)); return 0x20 },
	}
	c := &Cache{Kernels: k, Sums: &Checksums{}}

	a := arena.Payload{Data: 0x0909} // matrix, operand 0x11
	b := arena.Payload{Data: 0x1818} // state, operand 0x33

	assert.Equal(t, int32(0x20-0x10), c.Compare(&a, &b))
	assert.Equal(t, []uint16{0x11, 0x33}, order)
}

func TestCache_SortReturnsToBaseline(t *testing.T) {
	l := newList(t, 666, 0)
	want := l.Snapshot(l.Head)

	c := &Cache{Kernels: &testutil.CountingKernels{}, Sums: &Checksums{}}
	head := l.Mergesort(l.Head, c.Compare)
	require.NoError(t, l.Verify(head))

	head = l.Mergesort(head, RestoreIdx)
	assert.True(t, want.Equal(l.Snapshot(head)))
}

type kernelFunc struct {
	matrix func(int16, uint16) uint16
	state  func(int16, uint16) uint16
}

func (k kernelFunc) MatrixChecksum(op int16, crc uint16) uint16 { return k.matrix(op, crc) }
func (k kernelFunc) StateChecksum(op int16, crc uint16) uint16  { return k.state(op, crc) }
