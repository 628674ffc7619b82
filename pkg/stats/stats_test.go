package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportTimer(t *testing.T) {
	never := NewReportTimer(0)
	assert.False(t, never.Enabled())
	assert.False(t, never.Due(time.Now()))

	start := time.Unix(1_600_000_000, 0)
	rt := NewReportTimer(10 * time.Second)
	assert.False(t, rt.Due(start))
	assert.False(t, rt.Due(start.Add(9*time.Second)))
	assert.True(t, rt.Due(start.Add(10*time.Second)))
	assert.Equal(t, 12*time.Second, rt.Mark(start.Add(12*time.Second)))
	assert.False(t, rt.Due(start.Add(21*time.Second)))
	assert.True(t, rt.Due(start.Add(22*time.Second)))
}

func TestThroughputCounter(t *testing.T) {
	c := NewThroughputCounter("gen-0", time.Millisecond)
	for i := 0; i < 100; i++ {
		c.Tick(1)
	}
	time.Sleep(2 * time.Millisecond)
	c.Tick(2)
	assert.Equal(t, uint64(102), c.count)
	assert.Equal(t, uint64(102), c.lastCount)

	off := NewThroughputCounter("gen-1", 0)
	off.Tick(5)
	assert.Equal(t, uint64(5), off.count)
	assert.Equal(t, uint64(0), off.lastCount)
}
