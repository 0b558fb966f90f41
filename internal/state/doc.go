// Package state implements the state-machine collaborator kernel.
//
// Init fills a block with comma separated tokens drawn from four pattern
// families (integers, floats, scientific notation and malformed input),
// followed by zero padding. Bench scans the input with a number-recognizing
// state machine, corrupts every step-th byte, scans again and undoes the
// corruption, folding per-state counters into a checksum.
package state
