package ratecontrol

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
	"nexmark-gen/pkg/nexmark/ntypes"
	"nexmark-gen/pkg/nexmark/utils"
)

func TestIntervalFromRate(t *testing.T) {
	rc, err := NewRateController(1000, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(4000), rc.CurrentIntervalUs())
	assert.Equal(t, 4*time.Millisecond, rc.CurrentInterval())
	assert.Equal(t, uint64(1000), rc.TargetQPS())

	require.NoError(t, rc.SetTargetQPS(20_000_000))
	assert.Equal(t, uint64(1), rc.CurrentIntervalUs())
}

func TestRejectNonPositiveQPS(t *testing.T) {
	rc, err := NewRateController(1000, 1)
	require.NoError(t, err)
	err = rc.SetTargetQPS(0)
	assert.True(t, xerrors.Is(err, common_errors.ErrInvalidQPS))
	assert.EqualError(t, rc.SetTargetQPS(-5), "-5: qps must be positive")
	assert.Equal(t, uint64(1000), rc.CurrentIntervalUs())

	_, err = NewRateController(0, 1)
	assert.Error(t, err)
}

func TestConcurrentUpdates(t *testing.T) {
	rc, err := NewRateController(1000, 2)
	require.NoError(t, err)
	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(q int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = rc.SetTargetQPS(q * 1000)
				_ = rc.CurrentInterval()
			}
		}(int64(i))
	}
	wg.Wait()
	us := rc.CurrentIntervalUs()
	assert.Contains(t, []uint64{2000, 1000, 666, 500, 400, 333, 285, 250}, us)
}

func TestShaperSquare(t *testing.T) {
	c := ntypes.NewNexMarkConfig()
	c.EventRate = 100
	c.NextEventRate = 200
	c.RateShape = utils.SQUARE
	c.RatePeriodSec = 2
	c.NumEventGenerators = 1
	rc, err := NewRateController(c.EventRate, c.NumEventGenerators)
	require.NoError(t, err)
	s, err := NewShaper(rc, c)
	require.NoError(t, err)
	assert.False(t, s.Flat())
	assert.Equal(t, []uint64{100, 200}, s.Rates())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- s.Run(ctx) }()
	assert.Eventually(t, func() bool { return rc.TargetQPS() == 200 }, 3*time.Second, 10*time.Millisecond)
	expected := `
# HELP nexmark_gen_target_qps Aggregate event rate the generators are paced to
# TYPE nexmark_gen_target_qps gauge
nexmark_gen_target_qps 200
`
	assert.Eventually(t, func() bool {
		return testutil.GatherAndCompare(prometheus.DefaultGatherer, strings.NewReader(expected), "nexmark_gen_target_qps") == nil
	}, time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestShaperFlat(t *testing.T) {
	c := ntypes.NewNexMarkConfig()
	rc, err := NewRateController(c.EventRate, c.NumEventGenerators)
	require.NoError(t, err)
	s, err := NewShaper(rc, c)
	require.NoError(t, err)
	assert.True(t, s.Flat())
	assert.NoError(t, s.Run(context.Background()))
}
