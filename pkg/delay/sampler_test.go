package delay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
	"nexmark-gen/pkg/nexmark/ntypes"
)

func TestUniformRange(t *testing.T) {
	s, err := NewSampler(UNIFORM, 5, 1.0)
	require.NoError(t, err)
	random := rand.New(rand.NewSource(1))
	seen := make(map[uint64]int)
	for i := 0; i < 10_000; i++ {
		k := s.Sample(random)
		require.LessOrEqual(t, k, uint64(5))
		seen[k]++
	}
	assert.Len(t, seen, 6)
}

func TestZipfRangeAndSkew(t *testing.T) {
	s, err := NewSampler(ZIPF, 10, 2.0)
	require.NoError(t, err)
	random := rand.New(rand.NewSource(2))
	counts := make([]int, 11)
	for i := 0; i < 20_000; i++ {
		k := s.Sample(random)
		require.GreaterOrEqual(t, k, uint64(1))
		require.LessOrEqual(t, k, uint64(10))
		counts[k]++
	}
	assert.Equal(t, 0, counts[0])
	assert.Greater(t, counts[1], counts[2])
	assert.Greater(t, counts[2], counts[5])
	// weight of 1 is 1/H(10, 2) ~ 0.645
	assert.InDelta(t, 0.645, float64(counts[1])/20_000, 0.02)
}

func TestZipfEmptyInterval(t *testing.T) {
	s, err := NewSampler(ZIPF, 0, 1.0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), s.Sample(rand.New(rand.NewSource(3))))
}

func TestUnknownPattern(t *testing.T) {
	_, err := NewSampler("poisson", 3, 1.0)
	assert.True(t, xerrors.Is(err, common_errors.ErrUnknownDelayPattern))
	_, err = NewSampler(ZIPF, 3, 0)
	assert.True(t, xerrors.Is(err, common_errors.ErrInvalidConfig))
}

func TestShouldDelay(t *testing.T) {
	c := ntypes.NewNexMarkConfig()
	c.Delay = 100
	c.DelayInterval = 10
	c.DelayProportion = 0.5
	s, err := NewSamplerFromConfig(c)
	require.NoError(t, err)
	random := rand.New(rand.NewSource(4))
	for i := uint64(0); i < 100; i++ {
		assert.False(t, s.ShouldDelay(random, i))
	}
	delayed := 0
	for i := 0; i < 10_000; i++ {
		if s.ShouldDelay(random, 100) {
			delayed++
		}
	}
	assert.InDelta(t, 0.5, float64(delayed)/10_000, 0.03)

	c.DelayProportion = 0
	s, err = NewSamplerFromConfig(c)
	require.NoError(t, err)
	for i := 0; i < 10_000; i++ {
		assert.False(t, s.ShouldDelay(random, 1_000))
	}

	c.Delay = 0
	c.DelayInterval = 0
	c.DelayProportion = 0.9
	s, err = NewSamplerFromConfig(c)
	require.NoError(t, err)
	assert.False(t, s.ShouldDelay(random, 1_000_000))
}

func TestShiftKeepsStride(t *testing.T) {
	next := uint64(40*4 + 3)
	for k := uint64(0); k <= 10; k++ {
		shifted := Shift(next, k, 4)
		assert.Equal(t, uint64(3), shifted%4)
		assert.Equal(t, k*4, next-shifted)
	}
}
