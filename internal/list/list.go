package list

import (
	"errors"
	"fmt"

	"github.com/hupe1980/corebench/internal/arena"
	"github.com/hupe1980/corebench/internal/conv"
)

// ErrArenaInUse is returned when Init is given an arena that already holds a list.
var ErrArenaInUse = errors.New("list: arena already in use")

const (
	headData = 0x8080
	tailIdx  = 0x7fff
	tailData = 0xffff
)

// List is a singly linked list stored in an arena.
//
// Head is the first node after Init. Operations that reorder the list return
// the new first node; callers track it themselves.
type List struct {
	Head arena.Ref

	nodes    []arena.Node
	payloads []arena.Payload
	count    int
}

// Init builds a list in a and returns it sorted by idx.
//
// The head carries (0, 0x8080) and the tail sentinel (0x7fff, 0xffff). Items
// are inserted right after the head until the arena refuses; rejected inserts
// only show up in the arena stats.
func Init(a *arena.Arena, seed int16) (*List, error) {
	head, ok := a.Reserve(arena.Payload{Idx: 0, Data: headData})
	if !ok || head != 0 {
		return nil, ErrArenaInUse
	}

	count := a.Layout().Count
	info := arena.Payload{Idx: tailIdx, Data: tailData}
	a.Insert(head, info)

	for i := 0; i < count; i++ {
		datpat := uint16(int(seed)^i) & 0xf
		dat := (datpat << 3) | uint16(i&0x7)
		info.Data = (dat << 8) | dat
		a.Insert(head, info)
	}

	l := &List{
		nodes:    a.Nodes(),
		payloads: a.Payloads(),
		count:    count,
	}

	// The first fifth gets ascending idx, the rest a scrambled one.
	i := 1
	for f := l.nodes[head].Next; l.nodes[f].Next != arena.Nil; f = l.nodes[f].Next {
		p := l.info(f)
		if i < count/5 {
			idx, err := conv.IntToInt16(i)
			if err != nil {
				return nil, fmt.Errorf("list: idx: %w", err)
			}
			p.Idx = idx
			i++
			continue
		}
		pat := uint16(i ^ int(seed)) //nolint:gosec // truncation intended
		i++
		p.Idx = int16(0x3fff & (((i & 0x7) << 8) | int(pat))) //nolint:gosec // masked to 14 bits
	}

	l.Head = l.Mergesort(head, RestoreIdx)
	return l, nil
}

// Info returns the payload owned by node r.
func (l *List) Info(r arena.Ref) *arena.Payload {
	return l.info(r)
}

// Next returns the successor of node r.
func (l *List) Next(r arena.Ref) arena.Ref {
	return l.nodes[r].Next
}

// Count returns the slot capacity of the underlying arena.
func (l *List) Count() int {
	return l.count
}

func (l *List) info(r arena.Ref) *arena.Payload {
	return &l.payloads[l.nodes[r].Info]
}
