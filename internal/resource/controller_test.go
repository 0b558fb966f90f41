package resource

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Reserve(t *testing.T) {
	c := NewController(Limits{MemoryBytes: 6000})

	a, err := c.Reserve(2000)
	require.NoError(t, err)
	b, err := c.Reserve(2000)
	require.NoError(t, err)
	assert.Equal(t, Usage{Reserved: 4000, Peak: 4000, Limit: 6000}, c.Usage())

	_, err = c.Reserve(2001)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(4000), c.Usage().Reserved)

	a.Release()
	a.Release()
	assert.Equal(t, int64(2000), c.Usage().Reserved)

	d, err := c.Reserve(4000)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), d.Bytes())
	assert.Equal(t, Usage{Reserved: 6000, Peak: 6000, Limit: 6000}, c.Usage())

	b.Release()
	d.Release()
	assert.Equal(t, Usage{Reserved: 0, Peak: 6000, Limit: 6000}, c.Usage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Limits{})

	r, err := c.Reserve(1 << 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<30), c.Usage().Reserved)
	assert.Zero(t, c.Usage().Limit)

	zero, err := c.Reserve(0)
	require.NoError(t, err)
	zero.Release()

	r.Release()
	assert.Zero(t, c.Usage().Reserved)
	assert.Equal(t, int64(1<<30), c.Usage().Peak)
}

func TestController_PeakUnderConcurrency(t *testing.T) {
	c := NewController(Limits{MemoryBytes: 1 << 20})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := c.Reserve(2000)
			if assert.NoError(t, err) {
				r.Release()
			}
		}()
	}
	wg.Wait()

	u := c.Usage()
	assert.Zero(t, u.Reserved)
	assert.GreaterOrEqual(t, u.Peak, int64(2000))
	assert.LessOrEqual(t, u.Peak, int64(16*2000))
}

func TestController_Workers(t *testing.T) {
	c := NewController(Limits{Workers: 2})
	assert.Equal(t, int64(2), c.Workers())

	release1, err := c.Worker(t.Context())
	require.NoError(t, err)
	_, err = c.Worker(t.Context())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	_, err = c.Worker(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release1()
	release3, err := c.Worker(t.Context())
	require.NoError(t, err)
	release3()
}

func TestController_DefaultWorkers(t *testing.T) {
	c := NewController(Limits{})
	assert.Equal(t, int64(1), c.Workers())
}

func TestController_Progress(t *testing.T) {
	c := NewController(Limits{ProgressPerSec: 0.001})
	assert.True(t, c.AllowProgress())
	assert.False(t, c.AllowProgress())

	unthrottled := NewController(Limits{})
	for range 10 {
		assert.True(t, unthrottled.AllowProgress())
	}
}

func TestController_NilSafe(t *testing.T) {
	var c *Controller

	r, err := c.Reserve(100)
	require.NoError(t, err)
	r.Release()
	assert.Equal(t, Usage{}, c.Usage())
	assert.Equal(t, int64(1), c.Workers())

	release, err := c.Worker(t.Context())
	require.NoError(t, err)
	release()
	assert.True(t, c.AllowProgress())
}
