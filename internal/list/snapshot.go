package list

import (
	"errors"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/corebench/internal/arena"
)

var (
	// ErrDuplicateIdx is returned when two items share an idx.
	ErrDuplicateIdx = errors.New("list: duplicate idx")
	// ErrCycle is returned when a walk exceeds the arena capacity.
	ErrCycle = errors.New("list: cycle detected")
	// ErrMissingSentinel is returned when the head or tail sentinel is absent.
	ErrMissingSentinel = errors.New("list: missing sentinel")
)

// Entry is the observable content of one node.
type Entry struct {
	Idx  int16
	Data uint16
}

// Snapshot is the ordered content of a list.
type Snapshot []Entry

// Equal reports whether both snapshots hold the same entries in the same order.
func (s Snapshot) Equal(other Snapshot) bool {
	return slices.Equal(s, other)
}

// Snapshot records the entries reachable from list.
// The walk is bounded by the arena capacity.
func (l *List) Snapshot(list arena.Ref) Snapshot {
	s := make(Snapshot, 0, l.count)
	for r := list; r != arena.Nil && len(s) < l.count; r = l.nodes[r].Next {
		p := l.info(r)
		s = append(s, Entry{Idx: p.Idx, Data: p.Data})
	}
	return s
}

// Verify checks the structure of the list starting at list: the walk must
// terminate within the arena capacity, both sentinels must be present, and
// the items between them must carry distinct idx values. A missing sentinel
// is reported before a duplicate idx.
func (l *List) Verify(list arena.Ref) error {
	steps := 0
	for r := list; r != arena.Nil; r = l.nodes[r].Next {
		steps++
		if steps > l.count {
			return fmt.Errorf("%w: walk exceeds %d nodes", ErrCycle, l.count)
		}
	}

	var (
		seen       = roaring.New()
		head, tail bool
		dup        error
	)

	for r := list; r != arena.Nil; r = l.nodes[r].Next {
		p := l.info(r)
		switch {
		case p.Idx == 0 && p.Data == headData && !head:
			head = true
			if !seen.CheckedAdd(0) && dup == nil {
				dup = fmt.Errorf("%w: %#x", ErrDuplicateIdx, 0)
			}
			continue
		case p.Idx == tailIdx && p.Data == tailData:
			tail = true
			continue
		}

		if !seen.CheckedAdd(uint32(uint16(p.Idx))) && dup == nil {
			dup = fmt.Errorf("%w: %#x", ErrDuplicateIdx, p.Idx)
		}
	}

	if !head {
		return fmt.Errorf("%w: head", ErrMissingSentinel)
	}
	if !tail {
		return fmt.Errorf("%w: tail", ErrMissingSentinel)
	}
	return dup
}
