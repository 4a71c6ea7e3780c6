package pipeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountersConcurrentIncrements(t *testing.T) {
	t.Parallel()

	c := NewCounters()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.IncEnqueued()
			}
			for j := 0; j < 500; j++ {
				c.IncWritten()
			}
		}()
	}
	wg.Wait()

	enqueued, written := c.Snapshot()
	require.Equal(t, uint64(8000), enqueued)
	require.Equal(t, uint64(4000), written)
}

func TestCountersReset(t *testing.T) {
	t.Parallel()

	c := NewCounters()
	c.IncEnqueued()
	c.IncWritten()
	c.Reset()

	enqueued, written := c.Snapshot()
	require.Zero(t, enqueued)
	require.Zero(t, written)
}
