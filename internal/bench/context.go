package bench

import (
	"errors"
	"fmt"

	"github.com/hupe1980/corebench/internal/arena"
	"github.com/hupe1980/corebench/internal/list"
	"github.com/hupe1980/corebench/internal/matrix"
	"github.com/hupe1980/corebench/internal/mem"
	"github.com/hupe1980/corebench/internal/state"
)

var (
	// ErrListRequired is returned when the list kernel is not enabled.
	ErrListRequired = errors.New("bench: list algorithm must be enabled")
	// ErrShortBlock is returned when the block is smaller than Footprint.
	ErrShortBlock = errors.New("bench: block smaller than footprint")
)

// subAlign is the alignment of every sub-block offset.
const subAlign = 4

// Seeds are the benchmark inputs. Seed3 is the number of finds per list pass.
type Seeds struct {
	Seed1 int16
	Seed2 int16
	Seed3 int16
}

// Config configures a Context.
type Config struct {
	Seeds
	Size       int // Per-algorithm block size
	Algorithms Algorithms
	Iterations uint32
}

// Footprint returns the number of bytes New needs for size bytes per
// algorithm: sub-blocks start at 4-byte aligned offsets.
func Footprint(size int, algs Algorithms) int {
	n := algs.Count()
	if n == 0 {
		return 0
	}
	return mem.AlignUp(size, subAlign)*(n-1) + size
}

// Context is the state of one benchmark context.
type Context struct {
	cfg Config

	arena  *arena.Arena
	list   *list.List
	head   arena.Ref
	matrix *matrix.Params
	input  []byte

	sums    list.Checksums
	cache   list.Cache
	complex list.Comparator
}

// New initializes the enabled kernels inside block. block should start on a
// 4-byte boundary, as blocks from mem.AllocAligned and mmap.MapAnon do.
func New(block []byte, cfg Config) (*Context, error) {
	if !cfg.Algorithms.Has(AlgList) {
		return nil, ErrListRequired
	}
	if need := Footprint(cfg.Size, cfg.Algorithms); len(block) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBlock, len(block), need)
	}

	c := &Context{cfg: cfg}
	c.cache = list.Cache{Kernels: c, Sums: &c.sums}
	c.complex = c.cache.Compare

	stride := mem.AlignUp(cfg.Size, subAlign)
	off := 0
	sub := func() []byte {
		b := block[off : off+cfg.Size : off+cfg.Size]
		off += stride
		return b
	}

	var err error
	if c.arena, err = arena.New(sub()); err != nil {
		return nil, err
	}
	if c.list, err = list.Init(c.arena, cfg.Seed1); err != nil {
		return nil, err
	}
	c.head = c.list.Head

	if cfg.Algorithms.Has(AlgMatrix) {
		seed := int32(cfg.Seed1) | int32(cfg.Seed2)<<16
		if c.matrix, err = matrix.Init(sub(), seed); err != nil {
			return nil, err
		}
	}

	if cfg.Algorithms.Has(AlgState) {
		c.input = sub()
		state.Init(c.input, cfg.Seed1)
	}

	return c, nil
}

// Config returns the configuration of the context.
func (c *Context) Config() Config {
	return c.cfg
}

// SetIterations sets the number of iterations run by Iterate.
func (c *Context) SetIterations(n uint32) {
	c.cfg.Iterations = n
}

// Checksums returns the checksums of the last Iterate. Kernels that are not
// enabled report zero.
func (c *Context) Checksums() list.Checksums {
	s := c.sums
	if c.matrix == nil {
		s.Matrix = 0
	}
	if c.input == nil {
		s.State = 0
	}
	return s
}

// ArenaStats returns the list arena usage.
func (c *Context) ArenaStats() arena.Stats {
	return c.arena.Stats()
}

// Snapshot returns the current content of the list.
func (c *Context) Snapshot() list.Snapshot {
	return c.list.Snapshot(c.head)
}

// Verify checks the structure of the list.
func (c *Context) Verify() error {
	return c.list.Verify(c.head)
}

// MatrixChecksum implements list.Kernels. A disabled matrix kernel leaves
// acc unchanged.
func (c *Context) MatrixChecksum(operand int16, acc uint16) uint16 {
	if c.matrix == nil {
		return acc
	}
	return c.matrix.Bench(operand, acc)
}

// StateChecksum implements list.Kernels. A disabled state kernel leaves
// acc unchanged.
func (c *Context) StateChecksum(operand int16, acc uint16) uint16 {
	if c.input == nil {
		return acc
	}
	return state.Bench(c.input, c.cfg.Seed1, c.cfg.Seed2, operand, acc)
}
