package corebench

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting benchmark metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    contextHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordContext(id int, duration time.Duration, err error) {
//	    p.contextHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordIteration is called after each calibration probe and after the
	// timed run with the iteration count and the time it took.
	RecordIteration(iterations uint32, duration time.Duration)

	// RecordContext is called when a context finishes its timed run.
	RecordContext(id int, duration time.Duration, err error)

	// RecordValidation is called once per run with the known configuration
	// id (-1 if none) and the number of validation errors.
	RecordValidation(knownID int, errors int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(uint32, time.Duration)   {}
func (NoopMetricsCollector) RecordContext(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordValidation(int, int)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ProbeCount        atomic.Int64
	IterationsTotal   atomic.Int64
	IterationNanos    atomic.Int64
	ContextCount      atomic.Int64
	ContextErrors     atomic.Int64
	ContextTotalNanos atomic.Int64
	ValidationCount   atomic.Int64
	ValidationErrors  atomic.Int64
	UnknownSeeds      atomic.Int64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(iterations uint32, duration time.Duration) {
	b.ProbeCount.Add(1)
	b.IterationsTotal.Add(int64(iterations))
	b.IterationNanos.Add(duration.Nanoseconds())
}

// RecordContext implements MetricsCollector.
func (b *BasicMetricsCollector) RecordContext(_ int, duration time.Duration, err error) {
	b.ContextCount.Add(1)
	b.ContextTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ContextErrors.Add(1)
	}
}

// RecordValidation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordValidation(knownID int, errors int) {
	b.ValidationCount.Add(1)
	b.ValidationErrors.Add(int64(errors))
	if knownID < 0 {
		b.UnknownSeeds.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ProbeCount:        b.ProbeCount.Load(),
		IterationsTotal:   b.IterationsTotal.Load(),
		NanosPerIteration: b.getNanosPerIteration(),
		ContextCount:      b.ContextCount.Load(),
		ContextErrors:     b.ContextErrors.Load(),
		ContextAvgNanos:   b.getAvgContextNanos(),
		ValidationCount:   b.ValidationCount.Load(),
		ValidationErrors:  b.ValidationErrors.Load(),
		UnknownSeedsCount: b.UnknownSeeds.Load(),
	}
}

func (b *BasicMetricsCollector) getNanosPerIteration() int64 {
	n := b.IterationsTotal.Load()
	if n == 0 {
		return 0
	}
	return b.IterationNanos.Load() / n
}

func (b *BasicMetricsCollector) getAvgContextNanos() int64 {
	count := b.ContextCount.Load()
	if count == 0 {
		return 0
	}
	return b.ContextTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ProbeCount        int64
	IterationsTotal   int64
	NanosPerIteration int64
	ContextCount      int64
	ContextErrors     int64
	ContextAvgNanos   int64
	ValidationCount   int64
	ValidationErrors  int64
	UnknownSeedsCount int64
}
