package mmap

import (
	"os"
	"sync/atomic"
)

// Region is a mapped byte range that lives outside the Go heap.
type Region struct {
	data     []byte
	writable bool
	locked   bool
	closed   atomic.Bool
	unmap    func([]byte) error
}

// MapAnon returns a zero-filled read-write region of size bytes.
func MapAnon(size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	data, unmap, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}
	return &Region{data: data, writable: true, unmap: unmap}, nil
}

// MapFile maps the file at path read-only. An empty file yields an empty
// region.
func MapFile(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	switch size := fi.Size(); {
	case size == 0:
		return &Region{}, nil
	case size < 0 || int64(int(size)) != size:
		return nil, ErrInvalidSize
	default:
		data, unmap, err := osMap(f, int(size))
		if err != nil {
			return nil, err
		}
		return &Region{data: data, unmap: unmap}, nil
	}
}

// Bytes returns the region, or nil after Close.
func (r *Region) Bytes() []byte {
	if r.closed.Load() {
		return nil
	}
	return r.data
}

// Len returns the region size in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Prefault writes one zero byte per page of a fresh anonymous region so the
// pages are resident before timing starts.
func (r *Region) Prefault() error {
	if r.closed.Load() {
		return ErrClosed
	}
	if !r.writable {
		return ErrReadOnly
	}
	page := os.Getpagesize()
	for off := 0; off < len(r.data); off += page {
		r.data[off] = 0
	}
	return nil
}

// Lock pins the region in physical memory. Failure is common without
// privileges; callers treat it as a hint.
func (r *Region) Lock() error {
	if r.closed.Load() {
		return ErrClosed
	}
	if len(r.data) == 0 || r.locked {
		return nil
	}
	if err := osLock(r.data); err != nil {
		return err
	}
	r.locked = true
	return nil
}

// Advise passes an access hint to the kernel.
func (r *Region) Advise(pattern AccessPattern) error {
	if r.closed.Load() {
		return ErrClosed
	}
	if len(r.data) == 0 {
		return nil
	}
	return osAdvise(r.data, pattern)
}

// Close unlocks and unmaps the region. It is idempotent.
func (r *Region) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	if len(r.data) == 0 || r.unmap == nil {
		return nil
	}
	if r.locked {
		_ = osUnlock(r.data)
	}
	return r.unmap(r.data)
}
