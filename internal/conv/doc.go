// Package conv provides checked integer conversions.
//
// The benchmark carries sizes, counts and seeds in fixed-width types
// (int16 seeds, int32 arena references, uint32 iteration counts) while the
// caller supplies them as Go ints. These helpers reject values that would
// silently wrap.
//
// Inside the kernels, where wrap-around is the defined behaviour, use direct
// casts instead.
package conv
