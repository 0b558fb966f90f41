// Package mem provides memory block utilities.
//
// # Aligned Allocation
//
// AllocAligned returns 64-byte aligned heap blocks, used by the heap memory
// method so every benchmark context starts on its own cache line.
//
// # Carving
//
// Carve reinterprets part of a byte block as a typed slice, aligning the
// start address first. It is how the list arena and the matrix kernel lay out
// their storage inside a caller-provided block without allocating.
package mem
