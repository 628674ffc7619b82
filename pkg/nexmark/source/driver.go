package source

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"nexmark-gen/pkg/commtypes"
	"nexmark-gen/pkg/delay"
	"nexmark-gen/pkg/metrics"
	"nexmark-gen/pkg/nexmark/generator"
	"nexmark-gen/pkg/nexmark/ntypes"
	"nexmark-gen/pkg/ratecontrol"
	"nexmark-gen/pkg/sink"
	"nexmark-gen/pkg/utils/syncutils"
)

type Summary struct {
	Workers          []WorkerReport
	Published        uint64
	Delayed          uint64
	Skipped          uint64
	TransientErrors  uint64
	DeliveryFailures uint64
	Duration         time.Duration
}

func (s *Summary) String() string {
	return fmt.Sprintf("published %d events (%d late, %d skipped, %d transient errors, %d undelivered) in %v",
		s.Published, s.Delayed, s.Skipped, s.TransientErrors, s.DeliveryFailures, s.Duration)
}

type DriverParams struct {
	Config          *ntypes.NexMarkConfig
	RateController  *ratecontrol.RateController
	Router          *sink.Router
	Encoder         commtypes.EncoderG[*ntypes.Event]
	SinkFactory     sink.SinkFactory
	Running         *syncutils.AtomicBool
	TransientPolicy TransientPolicy
	ReportEvery     time.Duration
}

// Driver runs one GeneratorWorker per configured generator and joins them.
type Driver struct {
	params  *DriverParams
	gc      *generator.GeneratorConfig
	sampler *delay.Sampler
	shaper  *ratecontrol.Shaper

	mu      syncutils.Mutex
	summary Summary
}

func NewDriver(params *DriverParams) (*Driver, error) {
	if err := params.Config.Validate(); err != nil {
		return nil, err
	}
	var sampler *delay.Sampler
	if params.Config.DelayEnabled() {
		s, err := delay.NewSamplerFromConfig(params.Config)
		if err != nil {
			return nil, err
		}
		sampler = s
	}
	shaper, err := ratecontrol.NewShaper(params.RateController, params.Config)
	if err != nil {
		return nil, err
	}
	if params.Running == nil {
		params.Running = syncutils.NewAtomicBool(true)
	}
	return &Driver{
		params:  params,
		gc:      generator.NewGeneratorConfig(params.Config),
		sampler: sampler,
		shaper:  shaper,
	}, nil
}

func (d *Driver) record(r WorkerReport) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.summary.Workers = append(d.summary.Workers, r)
	d.summary.Published += r.Published
	d.summary.Delayed += r.Delayed
	d.summary.Skipped += r.Skipped
	d.summary.TransientErrors += r.TransientErrors
	d.summary.DeliveryFailures += r.DeliveryFailures
}

// Run blocks until every worker stopped. The summary covers the events actually
// published even when an error is returned.
func (d *Driver) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	numGen := d.params.Config.NumEventGenerators
	workers := make([]*GeneratorWorker, 0, numGen)
	sinks := make([]sink.Sink, 0, numGen)
	closeSinks := func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				log.Warn().Err(err).Msg("close sink")
			}
		}
	}
	for i := uint32(0); i < numGen; i++ {
		w, err := NewGeneratorWorker(d.gc, i, d.sampler)
		if err != nil {
			closeSinks()
			return &d.summary, err
		}
		s, err := d.params.SinkFactory(i)
		if err != nil {
			closeSinks()
			return &d.summary, err
		}
		workers = append(workers, w)
		sinks = append(sinks, s)
	}
	defer closeSinks()

	metrics.SetTargetQPS(d.params.RateController.TargetQPS())
	shaperCtx, cancelShaper := context.WithCancel(ctx)
	shaperDone := make(chan error, 1)
	go func() {
		shaperDone <- d.shaper.Run(shaperCtx)
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range workers {
		w := w
		params := &RunParams{
			Sink:            sinks[i],
			Router:          d.params.Router,
			Encoder:         d.params.Encoder,
			RateController:  d.params.RateController,
			Running:         d.params.Running,
			TransientPolicy: d.params.TransientPolicy,
			ReportEvery:     d.params.ReportEvery,
		}
		g.Go(func() error {
			report, err := w.Run(gctx, params)
			d.record(report)
			if err != nil {
				log.Error().Err(err).Uint32("worker", w.WorkerIdx()).Msg("generator stopped")
			}
			return err
		})
	}
	err := g.Wait()
	cancelShaper()
	if serr := <-shaperDone; serr != nil && err == nil {
		err = serr
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	sort.Slice(d.summary.Workers, func(i, j int) bool {
		return d.summary.Workers[i].WorkerIdx < d.summary.Workers[j].WorkerIdx
	})
	d.summary.Duration = time.Since(start)
	fmt.Fprintf(os.Stderr, "%s\n", d.summary.String())
	summary := d.summary
	return &summary, err
}
