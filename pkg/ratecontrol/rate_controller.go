// Package ratecontrol holds the pacing every generator follows.
package ratecontrol

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
	"nexmark-gen/pkg/metrics"
	"nexmark-gen/pkg/nexmark/ntypes"
)

// RateController is the per generator inter-event interval, shared by all
// generators and adjustable while they run. Last write wins.
type RateController struct {
	intervalUs    atomic.Uint64
	targetQPS     atomic.Uint64
	numGenerators uint32
}

func NewRateController(eventRate uint64, numGenerators uint32) (*RateController, error) {
	rc := &RateController{numGenerators: numGenerators}
	if err := rc.SetTargetQPS(int64(eventRate)); err != nil {
		return nil, err
	}
	return rc, nil
}

func IntervalUs(qps uint64, numGenerators uint32) uint64 {
	us := 1_000_000 * uint64(numGenerators) / qps
	if us == 0 {
		return 1
	}
	return us
}

func (rc *RateController) SetTargetQPS(qps int64) error {
	if qps <= 0 {
		return xerrors.Errorf("%d: %w", qps, common_errors.ErrInvalidQPS)
	}
	rc.intervalUs.Store(IntervalUs(uint64(qps), rc.numGenerators))
	rc.targetQPS.Store(uint64(qps))
	return nil
}

func (rc *RateController) CurrentIntervalUs() uint64 {
	return rc.intervalUs.Load()
}

func (rc *RateController) CurrentInterval() time.Duration {
	return time.Duration(rc.intervalUs.Load()) * time.Microsecond
}

func (rc *RateController) TargetQPS() uint64 {
	return rc.targetQPS.Load()
}

func (rc *RateController) NumGenerators() uint32 {
	return rc.numGenerators
}

// Shaper walks the controller through a rate shape, one step every stepLength.
type Shaper struct {
	rc         *RateController
	rates      []uint64
	stepLength time.Duration
}

func NewShaper(rc *RateController, c *ntypes.NexMarkConfig) (*Shaper, error) {
	rates, err := c.RateShape.RatesArr(c.EventRate, c.NextEventRate)
	if err != nil {
		return nil, err
	}
	stepSec, err := c.RateShape.StepLengthSec(c.RatePeriodSec)
	if err != nil {
		return nil, err
	}
	return &Shaper{
		rc:         rc,
		rates:      rates,
		stepLength: time.Duration(stepSec) * time.Second,
	}, nil
}

// Flat reports whether the shape has a single rate, in which case Run has nothing to do.
func (s *Shaper) Flat() bool {
	return len(s.rates) <= 1 || s.stepLength <= 0
}

func (s *Shaper) Rates() []uint64 {
	return s.rates
}

// Run applies the shape until ctx is done. Every step replaces the target rate,
// including one set through the control endpoint since the previous step.
func (s *Shaper) Run(ctx context.Context) error {
	if s.Flat() {
		return nil
	}
	ticker := time.NewTicker(s.stepLength)
	defer ticker.Stop()
	step := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			step = (step + 1) % len(s.rates)
			prev := s.rc.TargetQPS()
			if err := s.rc.SetTargetQPS(int64(s.rates[step])); err != nil {
				return err
			}
			metrics.SetTargetQPS(s.rates[step])
			log.Info().Uint64("qps", s.rates[step]).Uint64("prevQPS", prev).Msg("rate shape step replaces target qps")
		}
	}
}
