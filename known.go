package corebench

import (
	"fmt"

	"github.com/hupe1980/corebench/internal/crc"
)

// Seeds are the benchmark inputs. Seed3 is the number of finds per list pass
// and should be larger than 32 and well below the list size.
type Seeds struct {
	Seed1 int16 `json:"seed1"`
	Seed2 int16 `json:"seed2"`
	Seed3 int16 `json:"seed3"`
}

var (
	// PerformanceSeeds are the seeds of the performance run.
	PerformanceSeeds = Seeds{Seed1: 0, Seed2: 0, Seed3: 0x66}
	// ValidationSeeds are the seeds of the validation run.
	ValidationSeeds = Seeds{Seed1: 0x3415, Seed2: 0x3415, Seed3: 0x66}
	// ProfileSeeds are the seeds of the profile generation run.
	ProfileSeeds = Seeds{Seed1: 8, Seed2: 8, Seed3: 8}
)

// withDefaults expands the (0,0,0) and (1,0,0) shorthands.
func (s Seeds) withDefaults() Seeds {
	switch s {
	case Seeds{}:
		return PerformanceSeeds
	case Seeds{Seed1: 1}:
		return ValidationSeeds
	default:
		return s
	}
}

// SeedCRC folds the seeds and the per-algorithm size into the value that
// identifies a run configuration.
func SeedCRC(s Seeds, size int) uint16 {
	var v uint16
	v = crc.S16(s.Seed1, v)
	v = crc.S16(s.Seed2, v)
	v = crc.S16(s.Seed3, v)
	return crc.S16(int16(size), v) //nolint:gosec // truncation intended
}

// KnownRun is a configuration with published checksums.
type KnownRun struct {
	ID      int
	SeedCRC uint16
	Name    string
	List    uint16
	Matrix  uint16
	State   uint16
}

// ScoreKnownID is the known run whose result is reported as a score.
const ScoreKnownID = 3

var knownRuns = []KnownRun{
	{ID: 0, SeedCRC: 0x8a02, Name: "6k performance", List: 0xd4b0, Matrix: 0xbe52, State: 0x5e47},
	{ID: 1, SeedCRC: 0x7b05, Name: "6k validation", List: 0x3340, Matrix: 0x1199, State: 0x39bf},
	{ID: 2, SeedCRC: 0x4eaf, Name: "Profile generation", List: 0x6a79, Matrix: 0x5608, State: 0xe5a4},
	{ID: 3, SeedCRC: 0xe9f5, Name: "2K performance", List: 0xe714, Matrix: 0x1fd7, State: 0x8e3a},
	{ID: 4, SeedCRC: 0x18f2, Name: "2K validation", List: 0xe3c1, Matrix: 0x0747, State: 0x8d84},
}

// LookupKnown returns the known run with the given seed CRC.
func LookupKnown(seedCRC uint16) (KnownRun, bool) {
	for _, k := range knownRuns {
		if k.SeedCRC == seedCRC {
			return k, true
		}
	}
	return KnownRun{}, false
}

// KnownRuns returns all configurations with published checksums.
func KnownRuns() []KnownRun {
	out := make([]KnownRun, len(knownRuns))
	copy(out, knownRuns)
	return out
}

// check compares the checksums of one context against k.
func (k KnownRun) check(r ContextResult, algs Algorithms) []*ChecksumError {
	var errs []*ChecksumError
	if algs.Has(AlgList) && r.List != k.List {
		errs = append(errs, &ChecksumError{Context: r.ID, Kernel: "list", Got: r.List, Want: k.List})
	}
	if algs.Has(AlgMatrix) && r.Matrix != k.Matrix {
		errs = append(errs, &ChecksumError{Context: r.ID, Kernel: "matrix", Got: r.Matrix, Want: k.Matrix})
	}
	if algs.Has(AlgState) && r.State != k.State {
		errs = append(errs, &ChecksumError{Context: r.ID, Kernel: "state", Got: r.State, Want: k.State})
	}
	return errs
}

func formatCRC(v uint16) string {
	return fmt.Sprintf("0x%04x", v)
}
