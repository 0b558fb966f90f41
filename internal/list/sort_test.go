package list

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/corebench/internal/arena"
	"github.com/hupe1980/corebench/testutil"
)

func TestMergesort_ReversedInput(t *testing.T) {
	l := newList(t, 2000, 0)
	want := l.Snapshot(l.Head)

	head := l.Mergesort(l.Reverse(l.Head), CompareIdx)
	assert.Equal(t, l.Head, head)
	assert.True(t, want.Equal(l.Snapshot(head)))
}

func TestMergesort_Idempotent(t *testing.T) {
	l := newList(t, 666, 0x3415)
	want := l.Snapshot(l.Head)

	head := l.Mergesort(l.Head, RestoreIdx)
	assert.True(t, want.Equal(l.Snapshot(head)))

	head = l.Mergesort(head, RestoreIdx)
	assert.True(t, want.Equal(l.Snapshot(head)))
}

func TestMergesort_Stable(t *testing.T) {
	l := newList(t, 2000, 0x66)

	// Order by low data byte only; equal keys must keep idx order.
	byData := func(a, b *arena.Payload) int32 {
		return int32(a.Data&0xff) - int32(b.Data&0xff)
	}

	head := l.Mergesort(l.Head, byData)
	s := l.Snapshot(head)
	require.Len(t, s, l.Count()-1)

	for i := 1; i < len(s); i++ {
		prev, cur := s[i-1], s[i]
		require.LessOrEqual(t, prev.Data&0xff, cur.Data&0xff)
		if prev.Data&0xff == cur.Data&0xff && prev.Idx != 0x7fff {
			assert.Less(t, prev.Idx, cur.Idx, "position %d", i)
		}
	}

	again := l.Mergesort(head, byData)
	assert.True(t, s.Equal(l.Snapshot(again)))
}

func TestMergesort_SmallLists(t *testing.T) {
	l := newList(t, 120, 0)
	assert.Equal(t, arena.Nil, l.Mergesort(arena.Nil, CompareIdx))

	s := l.Snapshot(l.Head)
	assert.Len(t, s, 3)
	assert.IsNonDecreasing(t, idxs(s))
}

func TestMergesort_RandomSeeds(t *testing.T) {
	rng := testutil.NewRNG(42)

	for _, seeds := range rng.Seeds(16) {
		l := newList(t, rng.BlockSize(120, 4000), seeds[0])

		head := l.Reverse(l.Head)
		want := slices.Clone(l.Snapshot(head))
		slices.SortStableFunc(want, func(a, b Entry) int {
			return int(a.Idx) - int(b.Idx)
		})

		head = l.Mergesort(head, CompareIdx)
		assert.True(t, want.Equal(l.Snapshot(head)), "seed %#x", seeds[0])
	}
}

func TestRestoreIdx_RepairsLowByte(t *testing.T) {
	a := arena.Payload{Idx: 3, Data: 0x2dab}
	b := arena.Payload{Idx: 1, Data: 0x5bdb}

	assert.Positive(t, RestoreIdx(&a, &b))
	assert.Equal(t, uint16(0x2d2d), a.Data)
	assert.Equal(t, uint16(0x5b5b), b.Data)
	assert.Equal(t, int32(0), CompareIdx(&a, &a))
}

func BenchmarkMergesort(b *testing.B) {
	l := newList(b, 2000, 0)
	head := l.Head

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		head = l.Reverse(head)
		head = l.Mergesort(head, RestoreIdx)
	}
}
