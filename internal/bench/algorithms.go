package bench

import "strings"

// Algorithms is a bitmask of enabled kernels.
type Algorithms uint32

const (
	// AlgList is the linked-list kernel. It drives the other two.
	AlgList Algorithms = 1 << iota
	// AlgMatrix is the matrix kernel.
	AlgMatrix
	// AlgState is the state-machine kernel.
	AlgState

	// AllAlgorithms enables every kernel.
	AllAlgorithms = AlgList | AlgMatrix | AlgState
)

// Has reports whether every algorithm in x is enabled.
func (a Algorithms) Has(x Algorithms) bool {
	return a&x == x
}

// Count returns the number of enabled algorithms.
func (a Algorithms) Count() int {
	n := 0
	for x := AlgList; x <= AlgState; x <<= 1 {
		if a.Has(x) {
			n++
		}
	}
	return n
}

func (a Algorithms) String() string {
	var parts []string
	if a.Has(AlgList) {
		parts = append(parts, "list")
	}
	if a.Has(AlgMatrix) {
		parts = append(parts, "matrix")
	}
	if a.Has(AlgState) {
		parts = append(parts, "state")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
