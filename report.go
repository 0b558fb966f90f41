package corebench

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/hupe1980/corebench/ledger"
)

// Status is the validation outcome of a run.
type Status string

const (
	// StatusValidated means every checksum matched a known configuration.
	StatusValidated Status = "validated"
	// StatusErrors means a checksum mismatched or the run was too short.
	StatusErrors Status = "errors"
	// StatusUnknown means the seeds match no known configuration.
	StatusUnknown Status = "unknown"
)

// ArenaUsage is the slot usage of a context's list arena.
type ArenaUsage struct {
	Capacity int `json:"capacity"`
	Used     int `json:"used"`
	Rejected int `json:"rejected"`
}

// ContextResult holds the checksums of one context.
type ContextResult struct {
	ID       int           `json:"id"`
	List     uint16        `json:"crclist"`
	Matrix   uint16        `json:"crcmatrix"`
	State    uint16        `json:"crcstate"`
	Final    uint16        `json:"crcfinal"`
	Duration time.Duration `json:"duration_ns"`
	Arena    ArenaUsage    `json:"arena"`
	Warning  string        `json:"warning,omitempty"`
}

// Report is the result of a run.
type Report struct {
	RunID         string          `json:"run_id"`
	StartedAt     time.Time       `json:"started_at"`
	Seeds         Seeds           `json:"seeds"`
	TotalDataSize int             `json:"total_data_size"`
	Size          int             `json:"size"` // per algorithm
	Algorithms    Algorithms      `json:"algorithms"`
	MemoryMethod  string          `json:"memory_method"`
	MemoryBytes   int64           `json:"memory_bytes"` // reserved for all context blocks
	Contexts      int             `json:"contexts"`
	Iterations    uint32          `json:"iterations"` // per context
	Duration      time.Duration   `json:"duration_ns"`
	MinDuration   time.Duration   `json:"min_duration_ns"`
	SeedCRC       uint16          `json:"seedcrc"`
	KnownID       int             `json:"known_id"`
	KnownName     string          `json:"known_name,omitempty"`
	Results       []ContextResult `json:"results"`
	Mismatches    []string        `json:"mismatches,omitempty"`
	TooShort      bool            `json:"too_short"`
	Status        Status          `json:"status"`
	GoVersion     string          `json:"go_version"`
	Platform      string          `json:"platform"`
}

// TotalIterations returns the iterations summed over all contexts.
func (r *Report) TotalIterations() uint64 {
	return uint64(r.Contexts) * uint64(r.Iterations) //nolint:gosec // contexts >= 1
}

// Score returns the total iterations per second.
func (r *Report) Score() float64 {
	secs := r.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.TotalIterations()) / secs
}

// ErrorCount returns the number of validation errors.
func (r *Report) ErrorCount() int {
	n := len(r.Mismatches)
	if r.TooShort {
		n++
	}
	return n
}

// Valid reports whether the run was validated against a known configuration.
func (r *Report) Valid() bool {
	return r.Status == StatusValidated
}

func (r *Report) status() Status {
	switch {
	case r.ErrorCount() > 0:
		return StatusErrors
	case r.KnownID < 0:
		return StatusUnknown
	default:
		return StatusValidated
	}
}

// validate compares the context checksums against the known configuration
// and fills the validation fields.
func (r *Report) validate() error {
	var errs []error
	r.Mismatches = nil
	r.KnownID, r.KnownName = -1, ""

	if k, ok := LookupKnown(r.SeedCRC); ok {
		r.KnownID, r.KnownName = k.ID, k.Name
		for _, res := range r.Results {
			for _, e := range k.check(res, r.Algorithms) {
				r.Mismatches = append(r.Mismatches, e.Error())
				errs = append(errs, e)
			}
		}
	}
	r.TooShort = r.Duration < r.MinDuration
	r.Status = r.status()
	return errors.Join(errs...)
}

// LedgerEntry summarizes the report for the results ledger. archive is the
// blob name of the archived report and may be empty.
func (r *Report) LedgerEntry(archive string) ledger.Entry {
	var first ContextResult
	if len(r.Results) > 0 {
		first = r.Results[0]
	}
	return ledger.Entry{
		RunID:      r.RunID,
		SeedCRC:    r.SeedCRC,
		KnownID:    r.KnownID,
		ListCRC:    first.List,
		MatrixCRC:  first.Matrix,
		StateCRC:   first.State,
		FinalCRC:   first.Final,
		Iterations: r.Iterations,
		Contexts:   r.Contexts,
		Duration:   r.Duration,
		Score:      r.Score(),
		Valid:      r.Valid(),
		Archive:    archive,
		RecordedAt: r.StartedAt,
	}
}

// WriteText writes the report in the classic CoreMark console layout.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder

	if r.KnownName != "" {
		fmt.Fprintf(&b, "%s run parameters for coremark.\n", r.KnownName)
	}
	for _, m := range r.Mismatches {
		fmt.Fprintf(&b, "%s\n", strings.Replace(m, "]", "]ERROR! ", 1))
	}

	fmt.Fprintf(&b, "CoreMark Size    : %d\n", r.Size)
	fmt.Fprintf(&b, "Total ticks      : %d\n", r.Duration.Microseconds())
	fmt.Fprintf(&b, "Total time (secs): %f\n", r.Duration.Seconds())
	if r.Duration > 0 {
		fmt.Fprintf(&b, "Iterations/Sec   : %f\n", r.Score())
	}
	if r.TooShort {
		fmt.Fprintf(&b, "ERROR! Must execute for at least %s for a valid result!\n", r.MinDuration)
	}
	fmt.Fprintf(&b, "Iterations       : %d\n", r.TotalIterations())
	fmt.Fprintf(&b, "Compiler version : %s\n", r.GoVersion)
	fmt.Fprintf(&b, "Compiler flags   : %s\n", r.Platform)
	if r.Contexts > 1 {
		fmt.Fprintf(&b, "Parallel goroutines : %d\n", r.Contexts)
	}
	fmt.Fprintf(&b, "Memory location  : %s\n", r.MemoryMethod)
	fmt.Fprintf(&b, "seedcrc          : 0x%04x\n", r.SeedCRC)

	if r.Algorithms.Has(AlgList) {
		for _, res := range r.Results {
			fmt.Fprintf(&b, "[%d]crclist       : 0x%04x\n", res.ID, res.List)
		}
	}
	if r.Algorithms.Has(AlgMatrix) {
		for _, res := range r.Results {
			fmt.Fprintf(&b, "[%d]crcmatrix     : 0x%04x\n", res.ID, res.Matrix)
		}
	}
	if r.Algorithms.Has(AlgState) {
		for _, res := range r.Results {
			fmt.Fprintf(&b, "[%d]crcstate      : 0x%04x\n", res.ID, res.State)
		}
	}
	for _, res := range r.Results {
		fmt.Fprintf(&b, "[%d]crcfinal      : 0x%04x\n", res.ID, res.Final)
	}

	switch r.Status {
	case StatusValidated:
		b.WriteString("Correct operation validated.\n")
		if r.KnownID == ScoreKnownID {
			fmt.Fprintf(&b, "CoreMark 1.0 : %f / %s %s / %s", r.Score(), r.GoVersion, r.Platform, r.MemoryMethod)
			if r.Contexts > 1 {
				fmt.Fprintf(&b, " / %d:goroutines", r.Contexts)
			}
			b.WriteString("\n")
		}
	case StatusErrors:
		b.WriteString("Errors detected\n")
	case StatusUnknown:
		b.WriteString("Cannot validate operation for these seed values, please compare with results on a known platform.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
