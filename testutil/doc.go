// Package testutil provides testing utilities for corebench.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Inputs
//
//	rng := testutil.NewRNG(4711)
//	seed := rng.Int16()
//	size := rng.BlockSize(120, 4000)
//
// # Kernel Doubles
//
// CountingKernels is a deterministic stand-in for the matrix and state
// kernels that records how often each one was invoked.
package testutil
