package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/hupe1980/corebench/internal/conv"
	"github.com/hupe1980/corebench/internal/mem"
)

var (
	// ErrBlockTooSmall is returned when a block cannot hold a usable list.
	ErrBlockTooSmall = errors.New("arena: block too small")
	// ErrNodeTooLarge is returned when the node layout exceeds MaxNodeSize.
	ErrNodeTooLarge = errors.New("arena: node structure too big for comparable data")
)

const (
	// PayloadSize is the size of a Payload in bytes.
	PayloadSize = 4
	// ItemSize is the per-item byte budget used to size the regions.
	ItemSize = 16 + PayloadSize
	// MinCount is the smallest slot count that still fits head, tail and one item.
	MinCount = 4
	// MaxNodeSize is the largest node layout accepted by CheckLayout.
	MaxNodeSize = 128
)

// Ref is a slot index into the node or payload region.
type Ref int32

// Nil marks an absent node.
const Nil Ref = -1

// Node is a list link: the next node and the payload it owns.
type Node struct {
	Next Ref
	Info Ref
}

// Payload is the data record attached to a node.
//
// Data packs the immutable backup byte in bits 15..8, the cache-valid flag in
// bit 7, the operand in bits 6..3 and the selector in bits 2..0.
type Payload struct {
	Idx  int16
	Data uint16
}

// Layout describes how a block of BlockSize bytes is partitioned.
type Layout struct {
	BlockSize int
	Count     int
}

// NewLayout computes the slot count for a block of blockSize bytes.
func NewLayout(blockSize int) (Layout, error) {
	count := blockSize/ItemSize - 2
	if count < MinCount {
		return Layout{}, fmt.Errorf("%w: %d bytes yields %d slots, need %d", ErrBlockTooSmall, blockSize, count, MinCount)
	}
	if _, err := conv.IntToInt32(count); err != nil {
		return Layout{}, fmt.Errorf("arena: %w", err)
	}
	return Layout{BlockSize: blockSize, Count: count}, nil
}

// CheckLayout verifies the node layout fits the comparable-data budget.
func CheckLayout() error {
	return checkSize(unsafe.Sizeof(Node{}) + unsafe.Sizeof(Payload{}))
}

func checkSize(size uintptr) error {
	if size > MaxNodeSize {
		return fmt.Errorf("%w: %d bytes", ErrNodeTooLarge, size)
	}
	return nil
}

// Stats tracks slot usage.
type Stats struct {
	Capacity     int // Slots per region
	NodesUsed    int
	PayloadsUsed int
	Rejected     int // Inserts refused for lack of capacity
}

// Arena hands out node and payload slots from a fixed block.
type Arena struct {
	layout   Layout
	nodes    []Node
	payloads []Payload

	nodeCursor    int
	payloadCursor int
	rejected      int
}

// New partitions block into a node region followed by a payload region.
// The block must stay alive and untouched for the lifetime of the arena.
func New(block []byte) (*Arena, error) {
	layout, err := NewLayout(len(block))
	if err != nil {
		return nil, err
	}

	nodes, off, err := mem.Carve[Node](block, 0, layout.Count)
	if err != nil {
		return nil, fmt.Errorf("arena: node region: %w", err)
	}
	payloads, _, err := mem.Carve[Payload](block, off, layout.Count)
	if err != nil {
		return nil, fmt.Errorf("arena: payload region: %w", err)
	}

	return &Arena{
		layout:   layout,
		nodes:    nodes,
		payloads: payloads,
	}, nil
}

// Layout returns the partition of the arena block.
func (a *Arena) Layout() Layout {
	return a.layout
}

// Nodes returns the node region.
func (a *Arena) Nodes() []Node {
	return a.nodes
}

// Payloads returns the payload region.
func (a *Arena) Payloads() []Payload {
	return a.payloads
}

// Info returns the payload owned by node r.
func (a *Arena) Info(r Ref) *Payload {
	return &a.payloads[a.nodes[r].Info]
}

// Reserve claims the next node and payload slot without the end-bound check
// applied by Insert. It is used once, for the list head.
func (a *Arena) Reserve(info Payload) (Ref, bool) {
	if a.nodeCursor >= len(a.nodes) || a.payloadCursor >= len(a.payloads) {
		a.rejected++
		return Nil, false
	}
	n, p := a.take()
	a.payloads[p] = info
	a.nodes[n] = Node{Next: Nil, Info: p}
	return n, true
}

// Insert allocates a node carrying a copy of info and links it right after at.
// It returns Nil and false when either cursor would reach its end bound;
// existing nodes are left untouched in that case.
func (a *Arena) Insert(at Ref, info Payload) (Ref, bool) {
	if a.nodeCursor+1 >= len(a.nodes) || a.payloadCursor+1 >= len(a.payloads) {
		a.rejected++
		return Nil, false
	}
	n, p := a.take()
	a.payloads[p] = info
	a.nodes[n] = Node{Next: a.nodes[at].Next, Info: p}
	a.nodes[at].Next = n
	return n, true
}

func (a *Arena) take() (Ref, Ref) {
	n, p := Ref(a.nodeCursor), Ref(a.payloadCursor) //nolint:gosec // bounded by Count
	a.nodeCursor++
	a.payloadCursor++
	return n, p
}

// Stats returns the current slot usage.
func (a *Arena) Stats() Stats {
	return Stats{
		Capacity:     a.layout.Count,
		NodesUsed:    a.nodeCursor,
		PayloadsUsed: a.payloadCursor,
		Rejected:     a.rejected,
	}
}

func (a *Arena) String() string {
	s := a.Stats()
	return fmt.Sprintf(
		"Arena{block: %d B, slots: %d, nodes: %d, payloads: %d, rejected: %d}",
		a.layout.BlockSize,
		s.Capacity,
		s.NodesUsed,
		s.PayloadsUsed,
		s.Rejected,
	)
}
