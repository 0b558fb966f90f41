package corebench

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector

	assert.Equal(t, BasicMetricsStats{}, m.GetStats())

	m.RecordIteration(100, time.Millisecond)
	m.RecordIteration(300, 3*time.Millisecond)
	m.RecordContext(0, 2*time.Second, nil)
	m.RecordContext(1, 4*time.Second, errors.New("corrupted"))
	m.RecordValidation(3, 0)
	m.RecordValidation(-1, 2)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.ProbeCount)
	assert.Equal(t, int64(400), stats.IterationsTotal)
	assert.Equal(t, int64(10_000), stats.NanosPerIteration)
	assert.Equal(t, int64(2), stats.ContextCount)
	assert.Equal(t, int64(1), stats.ContextErrors)
	assert.Equal(t, (3 * time.Second).Nanoseconds(), stats.ContextAvgNanos)
	assert.Equal(t, int64(2), stats.ValidationCount)
	assert.Equal(t, int64(2), stats.ValidationErrors)
	assert.Equal(t, int64(1), stats.UnknownSeedsCount)
}

func TestBasicMetricsCollector_Concurrent(t *testing.T) {
	var m BasicMetricsCollector
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordContext(i, time.Millisecond, nil)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8), m.GetStats().ContextCount)
}

func TestNoopMetricsCollector(t *testing.T) {
	var mc MetricsCollector = NoopMetricsCollector{}
	assert.NotPanics(t, func() {
		mc.RecordIteration(1, time.Second)
		mc.RecordContext(0, time.Second, nil)
		mc.RecordValidation(0, 0)
	})
}
