package corebench

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMemoryMethod(t *testing.T) {
	for in, want := range map[string]MemoryMethod{"": MemoryHeap, "heap": MemoryHeap, "MMAP": MemoryMmap} {
		got, err := ParseMemoryMethod(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMemoryMethod("static")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	assert.Equal(t, "Heap", MemoryHeap.String())
	assert.Equal(t, "Mmap", MemoryMmap.String())
	assert.Equal(t, "MemoryMethod(9)", MemoryMethod(9).String())
}

func TestApplyOptions_Defaults(t *testing.T) {
	o := applyOptions(nil)
	assert.Equal(t, DefaultTotalDataSize, o.totalDataSize)
	assert.Equal(t, AllAlgorithms, o.algorithms)
	assert.Equal(t, 1, o.contexts)
	assert.Equal(t, 10*time.Second, o.minDuration)
	assert.Equal(t, time.Second, o.calibrationWindow)
	assert.NotNil(t, o.logger)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
}

func TestApplyOptions_NilGuards(t *testing.T) {
	o := applyOptions([]Option{
		nil,
		WithLogger(nil),
		WithMetricsCollector(nil),
		WithAlgorithms(0),
	})
	assert.NotNil(t, o.logger)
	assert.NotNil(t, o.metricsCollector)
	assert.Equal(t, AllAlgorithms, o.algorithms)
}

func TestApplyOptions_Overrides(t *testing.T) {
	mc := &BasicMetricsCollector{}
	o := applyOptions([]Option{
		WithSeeds(1, 2, 3),
		WithIterations(42),
		WithTotalDataSize(6000),
		WithAlgorithms(AlgList | AlgMatrix),
		WithContexts(4),
		WithMemoryMethod(MemoryMmap),
		WithMemoryLimit(1 << 20),
		WithMinDuration(time.Minute),
		WithCalibrationWindow(time.Millisecond),
		WithMetricsCollector(mc),
		WithLogLevel(slog.LevelDebug),
		WithProgressRate(0),
	})

	assert.Equal(t, Seeds{Seed1: 1, Seed2: 2, Seed3: 3}, o.seeds)
	assert.Equal(t, uint32(42), o.iterations)
	assert.Equal(t, 6000, o.totalDataSize)
	assert.Equal(t, AlgList|AlgMatrix, o.algorithms)
	assert.Equal(t, 4, o.contexts)
	assert.Equal(t, MemoryMmap, o.memoryMethod)
	assert.Equal(t, int64(1<<20), o.memoryLimit)
	assert.Equal(t, time.Minute, o.minDuration)
	assert.Equal(t, time.Millisecond, o.calibrationWindow)
	assert.Same(t, mc, o.metricsCollector)
	assert.Zero(t, o.progressRatePerSec)
}
