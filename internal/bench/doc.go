// Package bench runs the benchmark kernels of one context.
//
// A Context owns a memory block split into one sub-block per enabled
// algorithm: the list arena, the matrices and the state machine input. It
// wires the matrix and state kernels into the list value cache and drives the
// list benchmark through BenchList and Iterate.
//
// Contexts share nothing; run them on separate goroutines freely, but never
// use one Context from two goroutines.
package bench
