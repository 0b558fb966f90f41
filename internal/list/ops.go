package list

import "github.com/hupe1980/corebench/internal/arena"

// Find returns the first node from list on whose payload matches key.
//
// A non-negative key.Idx matches on idx; a negative one matches the low data
// byte against key.Data. Find returns arena.Nil when nothing matches.
func (l *List) Find(list arena.Ref, key arena.Payload) arena.Ref {
	if key.Idx >= 0 {
		for list != arena.Nil && l.info(list).Idx != key.Idx {
			list = l.nodes[list].Next
		}
		return list
	}
	for list != arena.Nil && (l.info(list).Data&0xff) != key.Data {
		list = l.nodes[list].Next
	}
	return list
}

// Reverse reverses the list in place and returns the former last node.
func (l *List) Reverse(list arena.Ref) arena.Ref {
	next := arena.Nil
	for list != arena.Nil {
		tmp := l.nodes[list].Next
		l.nodes[list].Next = next
		next = list
		list = tmp
	}
	return next
}

// Remove unlinks the node after item.
//
// The payloads of item and its successor are swapped first, so item keeps
// its position but now carries the successor's payload. The detached node is
// returned with the original payload of item and no successor.
// item must have a successor.
func (l *List) Remove(item arena.Ref) arena.Ref {
	ret := l.nodes[item].Next
	l.nodes[item].Info, l.nodes[ret].Info = l.nodes[ret].Info, l.nodes[item].Info
	l.nodes[item].Next = l.nodes[ret].Next
	l.nodes[ret].Next = arena.Nil
	return ret
}

// UndoRemove reverses Remove: it swaps the payloads back and relinks removed
// right after modified.
func (l *List) UndoRemove(removed, modified arena.Ref) arena.Ref {
	l.nodes[removed].Info, l.nodes[modified].Info = l.nodes[modified].Info, l.nodes[removed].Info
	l.nodes[removed].Next = l.nodes[modified].Next
	l.nodes[modified].Next = removed
	return removed
}

// PromoteNext moves the successor of item to the position right after head.
// It does nothing when item has no successor.
func (l *List) PromoteNext(item, head arena.Ref) {
	next := l.nodes[item].Next
	if next == arena.Nil {
		return
	}
	l.nodes[item].Next = l.nodes[next].Next
	l.nodes[next].Next = l.nodes[head].Next
	l.nodes[head].Next = next
}
