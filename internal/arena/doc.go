// Package arena carves list nodes and payloads out of a caller-provided block.
//
// The block is partitioned once into a node region followed by a payload
// region. Slots are handed out by two bump cursors and are never returned;
// the whole block is reclaimed by its owner when the benchmark context ends.
//
// References are int32 slot indices (Ref) rather than pointers, so the list
// engine performs its pointer surgery on plain integers and the block may live
// on the Go heap or in an anonymous mapping.
//
// # Capacity
//
// For a block of n bytes the arena holds Count = n/20 - 2 slots per region.
// Slot 0 is reserved for the list head. Insert refuses to hand out the last
// slot of either region, so at most Count-2 inserts succeed.
package arena
