package list

import "github.com/hupe1980/corebench/internal/arena"

// Comparator orders two payloads: negative when a sorts first, zero when
// equal, positive otherwise. Comparators may mutate the payloads.
type Comparator func(a, b *arena.Payload) int32

// CompareIdx orders payloads by idx.
func CompareIdx(a, b *arena.Payload) int32 {
	return int32(a.Idx) - int32(b.Idx)
}

// RestoreIdx orders payloads by idx after copying the backup byte of each
// payload back into its low byte, which clears any cached value.
func RestoreIdx(a, b *arena.Payload) int32 {
	a.Data = (a.Data & 0xff00) | (a.Data >> 8)
	b.Data = (b.Data & 0xff00) | (b.Data >> 8)
	return CompareIdx(a, b)
}

// Mergesort sorts the list starting at list and returns the new first node.
//
// The sort is bottom-up: runs of insize nodes are merged pairwise, insize
// doubles every pass, and it stops after a pass with at most one merge. Ties
// take the left run, so the sort is stable. No recursion, no extra storage.
func (l *List) Mergesort(list arena.Ref, cmp Comparator) arena.Ref {
	if list == arena.Nil {
		return arena.Nil
	}

	nodes := l.nodes
	insize := 1

	for {
		p := list
		list = arena.Nil
		tail := arena.Nil
		nmerges := 0

		for p != arena.Nil {
			nmerges++

			q := p
			psize := 0
			for i := 0; i < insize; i++ {
				psize++
				q = nodes[q].Next
				if q == arena.Nil {
					break
				}
			}
			qsize := insize

			for psize > 0 || (qsize > 0 && q != arena.Nil) {
				var e arena.Ref
				switch {
				case psize == 0:
					e, q = q, nodes[q].Next
					qsize--
				case qsize == 0 || q == arena.Nil:
					e, p = p, nodes[p].Next
					psize--
				case cmp(l.info(p), l.info(q)) <= 0:
					e, p = p, nodes[p].Next
					psize--
				default:
					e, q = q, nodes[q].Next
					qsize--
				}

				if tail != arena.Nil {
					nodes[tail].Next = e
				} else {
					list = e
				}
				tail = e
			}

			p = q
		}

		nodes[tail].Next = arena.Nil

		if nmerges <= 1 {
			return list
		}
		insize *= 2
	}
}
