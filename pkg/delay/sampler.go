// Package delay decides when a generator emits an event from its recent past and
// how far back it reaches.
package delay

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
	"nexmark-gen/pkg/nexmark/ntypes"
)

const (
	UNIFORM = ntypes.DELAY_UNIFORM
	ZIPF    = ntypes.DELAY_ZIPF
)

// Sampler is immutable after construction and may be shared by all generators.
type Sampler struct {
	pattern    string
	interval   uint64
	delay      uint64
	proportion float64
	// cumulative zipf weights of the offsets 1..interval
	cdf []float64
}

func NewSampler(pattern string, interval uint64, alpha float64) (*Sampler, error) {
	s := &Sampler{
		pattern:  pattern,
		interval: interval,
	}
	switch pattern {
	case UNIFORM:
	case ZIPF:
		if !(alpha > 0) {
			return nil, xerrors.Errorf("zipf alpha must be positive, got %v: %w", alpha, common_errors.ErrInvalidConfig)
		}
		s.cdf = zipfCDF(interval, alpha)
	default:
		return nil, xerrors.Errorf("%q: %w", pattern, common_errors.ErrUnknownDelayPattern)
	}
	return s, nil
}

func NewSamplerFromConfig(c *ntypes.NexMarkConfig) (*Sampler, error) {
	s, err := NewSampler(c.DelayPattern, c.DelayInterval, c.ZipfAlpha)
	if err != nil {
		return nil, err
	}
	s.delay = c.Delay
	s.proportion = c.DelayProportion
	return s, nil
}

func zipfCDF(n uint64, alpha float64) []float64 {
	cdf := make([]float64, n)
	sum := 0.0
	for i := uint64(1); i <= n; i++ {
		sum += 1.0 / math.Pow(float64(i), alpha)
		cdf[i-1] = sum
	}
	for i := range cdf {
		cdf[i] /= sum
	}
	return cdf
}

func (s *Sampler) Pattern() string {
	return s.pattern
}

func (s *Sampler) Interval() uint64 {
	return s.interval
}

// Sample draws a look-back in ticks. Uniform covers [0, interval]; zipf covers
// [1, interval] with weight k^-alpha, and is 0 when interval is 0.
func (s *Sampler) Sample(random *rand.Rand) uint64 {
	if s.pattern == ZIPF {
		if len(s.cdf) == 0 {
			return 0
		}
		u := random.Float64()
		i := sort.Search(len(s.cdf), func(i int) bool { return s.cdf[i] > u })
		if i == len(s.cdf) {
			i = len(s.cdf) - 1
		}
		return uint64(i) + 1
	}
	return random.Uint64n(s.interval + 1)
}

// ShouldDelay reports whether a generator that already emitted `emitted` events
// replaces its next event with a late one.
func (s *Sampler) ShouldDelay(random *rand.Rand, emitted uint64) bool {
	if s.delay == 0 || emitted < s.delay {
		return false
	}
	return random.Float64() < s.proportion
}

// Shift moves next back by k ticks of a generator striding numGenerators indices.
func Shift(next uint64, k uint64, numGenerators uint32) uint64 {
	return next - k*uint64(numGenerators)
}
