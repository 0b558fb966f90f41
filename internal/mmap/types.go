package mmap

import "errors"

// AccessPattern is a paging hint for Advise.
type AccessPattern int

const (
	// AccessDefault clears earlier advice.
	AccessDefault AccessPattern = iota
	// AccessSequential favors read-ahead, for archived reports read once.
	AccessSequential
	// AccessRandom disables read-ahead.
	AccessRandom
	// AccessWillNeed asks for the pages to be faulted in soon.
	AccessWillNeed
)

var (
	// ErrClosed is returned when a closed region is used.
	ErrClosed = errors.New("mmap: region is closed")
	// ErrInvalidSize is returned for a non-positive anonymous size or a file
	// too large to map.
	ErrInvalidSize = errors.New("mmap: invalid size")
	// ErrReadOnly is returned when writing to a file mapping.
	ErrReadOnly = errors.New("mmap: region is read-only")
)
