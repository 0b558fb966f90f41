package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of blocks returned by AllocAligned.
const Alignment = 64

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	offset := Padding(uintptr(ptr), Alignment)

	return buf[offset : offset+size : offset+size]
}

// Padding returns the number of bytes needed to round addr up to a multiple
// of align. align must be a power of two.
func Padding(addr uintptr, align int) int {
	a := uintptr(align)
	return int((a - (addr & (a - 1))) & (a - 1))
}

// AlignUp rounds n up to a multiple of align. align must be a power of two.
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
