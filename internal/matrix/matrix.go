package matrix

import (
	"errors"
	"fmt"

	"github.com/hupe1980/corebench/internal/crc"
	"github.com/hupe1980/corebench/internal/mem"
)

// ErrBlockTooSmall is returned when a block cannot hold a 1x1 matrix.
var ErrBlockTooSmall = errors.New("matrix: block too small")

// Params holds the matrices of one benchmark context.
type Params struct {
	N int
	A []int16
	B []int16
	C []int32
}

// Dim returns the matrix dimension used for a block of blockSize bytes.
func Dim(blockSize int) int {
	i, j := 0, 0
	for j < blockSize {
		i++
		j = i * i * 2 * 4
	}
	return i - 1
}

// Init lays out A, B and C in block and fills A and B from seed.
// A zero seed is replaced by 1.
func Init(block []byte, seed int32) (*Params, error) {
	n := Dim(len(block))
	if n < 1 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlockTooSmall, len(block))
	}
	if seed == 0 {
		seed = 1
	}

	a, off, err := mem.Carve[int16](block, 0, n*n)
	if err != nil {
		return nil, fmt.Errorf("matrix: A: %w", err)
	}
	b, off, err := mem.Carve[int16](block, off, n*n)
	if err != nil {
		return nil, fmt.Errorf("matrix: B: %w", err)
	}
	c, _, err := mem.Carve[int32](block, off, n*n)
	if err != nil {
		return nil, fmt.Errorf("matrix: C: %w", err)
	}

	order := int32(1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			seed = (order * seed) % 65536
			val := int16(seed + order) //nolint:gosec // truncation intended
			b[i*n+j] = val
			val = int16(int32(val)+order) & 0xff //nolint:gosec // truncation intended
			a[i*n+j] = val
			order++
		}
	}

	return &Params{N: n, A: a, B: b, C: c}, nil
}

// Bench runs Test with seed as the operand and folds the result into acc.
func (p *Params) Bench(seed int16, acc uint16) uint16 {
	return crc.S16(p.Test(seed), acc)
}

// Test runs every matrix operation with val and returns the folded summaries.
func (p *Params) Test(val int16) int16 {
	var sum uint16
	clip := int16(0xf000 | uint16(val)) //nolint:gosec // sign bit intended

	p.AddConst(val)

	p.MulConst(val)
	sum = crc.S16(p.Sum(clip), sum)

	p.MulVect()
	sum = crc.S16(p.Sum(clip), sum)

	p.MulMatrix()
	sum = crc.S16(p.Sum(clip), sum)

	p.MulMatrixBitExtract()
	sum = crc.S16(p.Sum(clip), sum)

	p.AddConst(-val)
	return int16(sum) //nolint:gosec // reinterpretation intended
}

// Sum summarizes C. Walking the elements in order, it accumulates them and
// scores 10 each time the running total exceeds clip (resetting the total),
// otherwise 1 when an element is larger than its predecessor.
func (p *Params) Sum(clip int16) int16 {
	var (
		tmp, prev int32
		ret       int16
	)
	for _, cur := range p.C[:p.N*p.N] {
		tmp += cur
		if tmp > int32(clip) {
			ret += 10
			tmp = 0
		} else if cur > prev {
			ret++
		}
		prev = cur
	}
	return ret
}

// AddConst adds val to every element of A.
func (p *Params) AddConst(val int16) {
	for i := range p.A[:p.N*p.N] {
		p.A[i] += val
	}
}

// MulConst sets C = A * val.
func (p *Params) MulConst(val int16) {
	for i := range p.C[:p.N*p.N] {
		p.C[i] = int32(p.A[i]) * int32(val)
	}
}

// MulVect multiplies A by the first column-major vector of B into the first N
// elements of C. The rest of C is left untouched.
func (p *Params) MulVect() {
	n := p.N
	for i := 0; i < n; i++ {
		var c int32
		for j := 0; j < n; j++ {
			c += int32(p.A[i*n+j]) * int32(p.B[j])
		}
		p.C[i] = c
	}
}

// MulMatrix sets C = A * B.
func (p *Params) MulMatrix() {
	n := p.N
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var c int32
			for k := 0; k < n; k++ {
				c += int32(p.A[i*n+k]) * int32(p.B[k*n+j])
			}
			p.C[i*n+j] = c
		}
	}
}

// MulMatrixBitExtract multiplies A by B, but each product contributes the
// product of two of its bit fields (bits 2..5 and bits 5..11) instead of
// itself.
func (p *Params) MulMatrixBitExtract() {
	n := p.N
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var c int32
			for k := 0; k < n; k++ {
				tmp := int32(p.A[i*n+k]) * int32(p.B[k*n+j])
				c += bitExtract(tmp, 2, 4) * bitExtract(tmp, 5, 7)
			}
			p.C[i*n+j] = c
		}
	}
}

func bitExtract(x int32, from, width uint) int32 {
	return (x >> from) & (int32(1)<<width - 1)
}
