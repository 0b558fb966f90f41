package corebench

import (
	"errors"
	"fmt"

	"github.com/hupe1980/corebench/internal/bench"
	"github.com/hupe1980/corebench/internal/list"
)

var (
	// ErrStructTooLarge is returned when the list node layout exceeds the
	// comparable-data budget.
	ErrStructTooLarge = errors.New("list head structure too big for comparable data")

	// ErrListRequired is returned when the list algorithm is not enabled.
	// The list kernel drives the matrix and state kernels.
	ErrListRequired = bench.ErrListRequired

	// ErrInvalidConfig is returned for invalid run options.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidSeed is returned when a seed argument cannot be parsed.
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrListCorrupted is returned when a list fails structural verification
	// after the run.
	ErrListCorrupted = errors.New("list corrupted")
)

// ChecksumError indicates a kernel checksum that differs from the published
// value for the run's seeds.
type ChecksumError struct {
	Context int
	Kernel  string // "list", "matrix" or "state"
	Got     uint16
	Want    uint16
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("[%d]%s crc 0x%04x - should be 0x%04x", e.Context, e.Kernel, e.Got, e.Want)
}

// SizeError indicates a data size too small for the enabled algorithms.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type SizeError struct {
	TotalSize    int
	PerAlgorithm int
	Min          int
	cause        error
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("data size %d gives %d bytes per algorithm, need at least %d", e.TotalSize, e.PerAlgorithm, e.Min)
}

func (e *SizeError) Unwrap() error { return e.cause }

// verifyError classifies a list verification failure. Duplicate idx values
// can occur legitimately in large lists and are reported as warnings only.
func verifyError(id int, err error) (warning, fatal error) {
	if err == nil {
		return nil, nil
	}
	if errors.Is(err, list.ErrDuplicateIdx) {
		return err, nil
	}
	return nil, fmt.Errorf("%w: context %d: %w", ErrListCorrupted, id, err)
}
