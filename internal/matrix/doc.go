// Package matrix implements the matrix collaborator kernel.
//
// Three N x N matrices live inside a caller-provided block: A and B hold
// int16 elements, C holds int32 results. N is the largest size for which
// N*N*8 stays below the block size.
//
// Each Test call adds a constant to A, runs a constant, vector, matrix and
// bit-extracting matrix multiply into C, summarizes C after each step and
// folds the summaries into a checksum. A is restored before returning, so a
// Params can be tested any number of times.
//
// All arithmetic wraps at the element width.
package matrix
