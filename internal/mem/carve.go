package mem

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrShortBlock is returned when a block cannot hold the requested elements.
var ErrShortBlock = errors.New("mem: block too short")

// Carve returns n elements of T backed by block, starting at the first
// offset >= off whose address is aligned for T. It also returns the offset
// just past the carved elements.
//
// T must not contain Go pointers: the block memory is not scanned by the GC.
func Carve[T any](block []byte, off, n int) ([]T, int, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))

	if n < 0 || off < 0 || off > len(block) {
		return nil, off, fmt.Errorf("%w: offset %d, count %d, block %d", ErrShortBlock, off, n, len(block))
	}
	if n == 0 {
		return []T{}, off, nil
	}

	base := uintptr(unsafe.Pointer(unsafe.SliceData(block))) //nolint:gosec // address arithmetic for alignment only
	start := off + Padding(base+uintptr(off), align)
	end := start + n*size
	if end > len(block) {
		return nil, off, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBlock, end-off, off, len(block))
	}

	ptr := unsafe.Pointer(&block[start])        //nolint:gosec // block outlives the carved slice
	return unsafe.Slice((*T)(ptr), n), end, nil //nolint:gosec // bounds checked above
}
