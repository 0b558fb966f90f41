package bench

import (
	"github.com/hupe1980/corebench/internal/arena"
	"github.com/hupe1980/corebench/internal/crc"
	"github.com/hupe1980/corebench/internal/list"
)

// BenchList runs one list pass and returns its checksum.
//
// Seed3 times it looks up a key, reverses the list and, on a hit, moves the
// found node's successor to the front. With finderIdx > 0 the list is then
// sorted by cached value, which runs the matrix and state kernels. Finally a
// node is removed and restored and the list is sorted back by idx. The list
// ends up in the state it started in.
func (c *Context) BenchList(finderIdx int16) uint16 {
	l := c.list
	head := c.head

	var retval, found, missed uint16
	info := arena.Payload{Idx: finderIdx}

	for i := int16(0); i < c.cfg.Seed3; i++ {
		info.Data = uint16(i) & 0xff //nolint:gosec // i >= 0
		thisFind := l.Find(head, info)
		head = l.Reverse(head)

		if thisFind == arena.Nil {
			missed++
			retval += (l.Info(l.Next(head)).Data >> 8) & 1
		} else {
			found++
			if data := l.Info(thisFind).Data; data&1 != 0 {
				retval += (data >> 9) & 1
			}
			l.PromoteNext(thisFind, head)
		}

		if info.Idx >= 0 {
			info.Idx++
		}
	}

	retval += found*4 - missed

	if finderIdx > 0 {
		head = l.Mergesort(head, c.complex)
	}

	remover := l.Remove(l.Next(head))
	finder := l.Find(head, info)
	if finder == arena.Nil {
		finder = l.Next(head)
	}
	for ; finder != arena.Nil; finder = l.Next(finder) {
		retval = crc.U16(l.Info(head).Data, retval)
	}
	l.UndoRemove(remover, l.Next(head))

	head = l.Mergesort(head, list.RestoreIdx)
	for finder = l.Next(head); finder != arena.Nil; finder = l.Next(finder) {
		retval = crc.U16(l.Info(head).Data, retval)
	}

	c.head = head
	return retval
}

// Iterate resets the checksums and runs the configured number of iterations,
// each consisting of a list pass with finder index 1 and one with -1.
// Checksums().List holds the running checksum after the first iteration.
func (c *Context) Iterate() {
	c.sums.Reset()

	for i := uint32(0); i < c.cfg.Iterations; i++ {
		c.sums.Fold(c.BenchList(1))
		c.sums.Fold(c.BenchList(-1))
		if i == 0 {
			c.sums.List = c.sums.CRC
		}
	}
}
