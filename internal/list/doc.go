// Package list implements the linked-list benchmark engine.
//
// A List lives entirely inside an arena: nodes and payloads are slots of a
// caller-provided block and links are arena.Ref indices. The engine never
// allocates after Init.
//
// # Operations
//
//   - Init builds the head, the tail sentinel and the seed-derived items, then
//     sorts by idx so every run starts from the same baseline.
//   - Find, Reverse, Remove and UndoRemove perform the pointer surgery.
//     Remove and UndoRemove are exact inverses.
//   - Mergesort is a bottom-up, stable, non-recursive merge sort driven by a
//     Comparator.
//
// # Value cache
//
// Cache.Compare orders payloads by a 7-bit value computed once per payload by
// dispatching to the matrix or state kernels. The computation folds into a
// Checksums accumulator, so comparisons must happen in a fixed order for
// results to be reproducible.
package list
