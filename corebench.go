package corebench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/hupe1980/corebench/internal/arena"
	"github.com/hupe1980/corebench/internal/bench"
	"github.com/hupe1980/corebench/internal/mem"
	"github.com/hupe1980/corebench/internal/mmap"
	"github.com/hupe1980/corebench/internal/resource"
	"golang.org/x/sync/errgroup"
)

// MinAlgorithmSize is the smallest per-algorithm block that holds a list.
const MinAlgorithmSize = (arena.MinCount + 2) * arena.ItemSize

// Run builds the configured contexts, runs them in parallel and validates
// their checksums against the published values.
//
// On a checksum mismatch Run returns the report together with an error
// wrapping one *ChecksumError per mismatch.
func Run(ctx context.Context, optFns ...Option) (*Report, error) {
	o := applyOptions(optFns)

	if err := arena.CheckLayout(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStructTooLarge, err)
	}

	r, err := newRunner(o)
	if err != nil {
		return nil, err
	}
	defer r.close()

	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.run(ctx)
}

// block is a context data block and the function that returns it.
type block struct {
	data    []byte
	release func() error
}

type runner struct {
	o        options
	seeds    Seeds
	size     int
	runID    string
	log      *Logger
	ctrl     *resource.Controller
	blocks   []block
	contexts []*bench.Context
}

func newRunner(o options) (*runner, error) {
	if !o.algorithms.Has(AlgList) {
		return nil, ErrListRequired
	}
	if o.contexts < 1 {
		return nil, fmt.Errorf("%w: contexts must be positive, got %d", ErrInvalidConfig, o.contexts)
	}

	size := o.totalDataSize / o.algorithms.Count()
	if size < MinAlgorithmSize {
		return nil, &SizeError{
			TotalSize:    o.totalDataSize,
			PerAlgorithm: size,
			Min:          MinAlgorithmSize,
			cause:        arena.ErrBlockTooSmall,
		}
	}

	start := time.Now().UTC()
	runID := start.Format("20060102T150405.000000000Z")
	workers := min(o.contexts, runtime.GOMAXPROCS(0))

	return &runner{
		o:     o,
		seeds: o.seeds.withDefaults(),
		size:  size,
		runID: runID,
		log:   o.logger.WithRunID(runID),
		ctrl: resource.NewController(resource.Limits{
			MemoryBytes:    o.memoryLimit,
			Workers:        int64(workers),
			ProgressPerSec: o.progressRatePerSec,
		}),
	}, nil
}

// alloc obtains one data block with the configured memory method.
func (r *runner) alloc(n int) (block, error) {
	res, err := r.ctrl.Reserve(int64(n))
	if err != nil {
		return block{}, fmt.Errorf("%w: %d bytes per context", err, n)
	}
	release := func() error {
		res.Release()
		return nil
	}

	switch r.o.memoryMethod {
	case MemoryHeap:
		return block{data: mem.AllocAligned(n), release: release}, nil
	case MemoryMmap:
		m, err := mmap.MapAnon(n)
		if err != nil {
			_ = release()
			return block{}, err
		}
		if err := m.Prefault(); err != nil {
			_ = m.Close()
			_ = release()
			return block{}, err
		}
		// Pinning is best effort; RLIMIT_MEMLOCK often forbids it.
		_ = m.Lock()
		return block{
			data: m.Bytes(),
			release: func() error {
				err := m.Close()
				_ = release()
				return err
			},
		}, nil
	default:
		_ = release()
		return block{}, fmt.Errorf("%w: memory method %s", ErrInvalidConfig, r.o.memoryMethod)
	}
}

func (r *runner) init(ctx context.Context) error {
	footprint := bench.Footprint(r.size, r.o.algorithms)
	cfg := bench.Config{
		Seeds: bench.Seeds{
			Seed1: r.seeds.Seed1,
			Seed2: r.seeds.Seed2,
			Seed3: r.seeds.Seed3,
		},
		Size:       r.size,
		Algorithms: r.o.algorithms,
		Iterations: r.o.iterations,
	}

	for i := 0; i < r.o.contexts; i++ {
		log := r.log.WithContextID(i)

		b, err := r.alloc(footprint)
		if err != nil {
			log.LogInit(ctx, r.size, r.o.algorithms.String(), r.o.memoryMethod, err)
			return err
		}
		r.blocks = append(r.blocks, b)

		c, err := bench.New(b.data, cfg)
		log.LogInit(ctx, r.size, r.o.algorithms.String(), r.o.memoryMethod, err)
		if err != nil {
			return fmt.Errorf("context %d: %w", i, err)
		}
		r.contexts = append(r.contexts, c)
	}
	return nil
}

// calibrate grows the iteration count by 10x until one probe lasts a full
// window, then scales it so the run lasts about the minimum duration.
func (r *runner) calibrate(ctx context.Context) (uint32, error) {
	c := r.contexts[0]
	window := max(r.o.calibrationWindow, time.Nanosecond)
	target := max(r.o.minDuration, window)

	iterations := uint32(1)
	var elapsed time.Duration
	for elapsed < window {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		iterations *= 10
		c.SetIterations(iterations)

		start := time.Now()
		c.Iterate()
		elapsed = time.Since(start)

		r.o.metricsCollector.RecordIteration(iterations, elapsed)
		if r.ctrl.AllowProgress() {
			r.log.LogCalibration(ctx, iterations, elapsed)
		}
	}

	divisor := max(int64(elapsed/window), 1)
	scale := 1 + int64(target/window)/divisor
	return iterations * uint32(scale), nil //nolint:gosec // scale <= 1 + target/window
}

func (r *runner) run(ctx context.Context) (*Report, error) {
	iterations := r.o.iterations
	if iterations == 0 {
		var err error
		if iterations, err = r.calibrate(ctx); err != nil {
			return nil, err
		}
	}
	for _, c := range r.contexts {
		c.SetIterations(iterations)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	durations := make([]time.Duration, len(r.contexts))
	g, gctx := errgroup.WithContext(ctx)

	start := time.Now()
	for i, c := range r.contexts {
		g.Go(func() error {
			release, err := r.ctrl.Worker(gctx)
			if err != nil {
				r.o.metricsCollector.RecordContext(i, 0, err)
				return err
			}
			defer release()

			t0 := time.Now()
			c.Iterate()
			durations[i] = time.Since(t0)
			r.o.metricsCollector.RecordContext(i, durations[i], nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	r.o.metricsCollector.RecordIteration(iterations, elapsed)

	report := &Report{
		RunID:         r.runID,
		StartedAt:     start.UTC(),
		Seeds:         r.seeds,
		TotalDataSize: r.o.totalDataSize,
		Size:          r.size,
		Algorithms:    r.o.algorithms,
		MemoryMethod:  r.o.memoryMethod.String(),
		Contexts:      len(r.contexts),
		Iterations:    iterations,
		Duration:      elapsed,
		MinDuration:   r.o.minDuration,
		MemoryBytes:   r.ctrl.Usage().Peak,
		SeedCRC:       SeedCRC(r.seeds, r.size),
		GoVersion:     runtime.Version(),
		Platform:      platform(),
	}

	for i, c := range r.contexts {
		sums := c.Checksums()
		stats := c.ArenaStats()
		res := ContextResult{
			ID:       i,
			List:     sums.List,
			Matrix:   sums.Matrix,
			State:    sums.State,
			Final:    sums.CRC,
			Duration: durations[i],
			Arena: ArenaUsage{
				Capacity: stats.Capacity,
				Used:     stats.NodesUsed,
				Rejected: stats.Rejected,
			},
		}

		warning, fatal := verifyError(i, c.Verify())
		if fatal != nil {
			return nil, fatal
		}
		if warning != nil {
			res.Warning = warning.Error()
			r.log.WithContextID(i).WarnContext(ctx, "list verification warning", "error", warning)
		}
		report.Results = append(report.Results, res)
	}

	validationErr := report.validate()
	r.o.metricsCollector.RecordValidation(report.KnownID, report.ErrorCount())
	r.log.LogValidation(ctx, report.SeedCRC, report.KnownName, report.ErrorCount())

	return report, validationErr
}

func (r *runner) close() {
	var errs []error
	for i, b := range r.blocks {
		if err := b.release(); err != nil {
			errs = append(errs, fmt.Errorf("block %d: %w", i, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		r.log.Warn("releasing blocks failed", "error", err)
	}
}
