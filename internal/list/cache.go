package list

import (
	"github.com/hupe1980/corebench/internal/arena"
	"github.com/hupe1980/corebench/internal/crc"
)

// Kernels computes the collaborator checksums the value cache dispatches to.
type Kernels interface {
	// MatrixChecksum runs the matrix kernel with operand and folds its
	// result into crc.
	MatrixChecksum(operand int16, crc uint16) uint16
	// StateChecksum runs the state kernel with step operand and folds its
	// result into crc.
	StateChecksum(operand int16, crc uint16) uint16
}

// Checksums accumulates the running checksum of one benchmark context.
//
// Matrix and State latch the first non-zero kernel result of a run.
type Checksums struct {
	CRC    uint16
	List   uint16
	Matrix uint16
	State  uint16
}

// Fold folds v into the running checksum.
func (c *Checksums) Fold(v uint16) {
	c.CRC = crc.U16(v, c.CRC)
}

// LatchMatrix records v as the matrix checksum unless one is already set.
func (c *Checksums) LatchMatrix(v uint16) {
	if c.Matrix == 0 {
		c.Matrix = v
	}
}

// LatchState records v as the state checksum unless one is already set.
func (c *Checksums) LatchState(v uint16) {
	if c.State == 0 {
		c.State = v
	}
}

// Reset clears all checksums.
func (c *Checksums) Reset() {
	*c = Checksums{}
}

const (
	cacheValid = 0x80
	valueMask  = 0x7f
	minStep    = 0x22
)

// Cache computes and memoizes the 7-bit value of payloads.
type Cache struct {
	Kernels Kernels
	Sums    *Checksums
}

// ComputeCached returns the cached value of p, computing it on first use.
//
// Selector 0 runs the state kernel, selector 1 the matrix kernel, anything
// else uses the raw data. The result is folded into Sums.CRC and stored in
// the low 7 bits of p.Data with the cache-valid bit set.
func (c *Cache) ComputeCached(p *arena.Payload) int16 {
	data := p.Data
	if data&cacheValid != 0 {
		return int16(data & valueMask)
	}

	flag := data & 0x7
	dtype := int16((data >> 3) & 0xf)
	dtype |= dtype << 4

	var ret uint16
	switch flag {
	case 0:
		if dtype < minStep {
			dtype = minStep
		}
		ret = c.Kernels.StateChecksum(dtype, c.Sums.CRC)
		c.Sums.LatchState(ret)
	case 1:
		ret = c.Kernels.MatrixChecksum(dtype, c.Sums.CRC)
		c.Sums.LatchMatrix(ret)
	default:
		ret = data
	}

	c.Sums.Fold(ret)
	ret &= valueMask
	p.Data = (data & 0xff00) | cacheValid | ret
	return int16(ret)
}

// Compare orders payloads by their cached value, computing a before b.
func (c *Cache) Compare(a, b *arena.Payload) int32 {
	va := c.ComputeCached(a)
	vb := c.ComputeCached(b)
	return int32(va) - int32(vb)
}
