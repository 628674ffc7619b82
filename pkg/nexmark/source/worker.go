package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
	"nexmark-gen/pkg/commtypes"
	"nexmark-gen/pkg/debug"
	"nexmark-gen/pkg/delay"
	"nexmark-gen/pkg/hashfuncs"
	"nexmark-gen/pkg/metrics"
	"nexmark-gen/pkg/nexmark/generator"
	"nexmark-gen/pkg/nexmark/ntypes"
	"nexmark-gen/pkg/ratecontrol"
	"nexmark-gen/pkg/sink"
	"nexmark-gen/pkg/stats"
	"nexmark-gen/pkg/utils/syncutils"
)

const flushTimeout = 30 * time.Second

type TransientPolicy uint8

const (
	// log the failed publish and move on to the next tick
	CONTINUE TransientPolicy = iota
	// stop the generator like a fatal error would
	FAIL
)

func StrToTransientPolicy(s string) (TransientPolicy, error) {
	switch strings.ToLower(s) {
	case "", "continue":
		return CONTINUE, nil
	case "fail":
		return FAIL, nil
	default:
		return CONTINUE, fmt.Errorf("unknown transient error policy: %s", s)
	}
}

func (p TransientPolicy) String() string {
	if p == FAIL {
		return "fail"
	}
	return "continue"
}

// Produced is the outcome of one generator tick.
type Produced struct {
	Event   *ntypes.Event
	Index   uint64
	Delayed bool
	Skipped bool
}

// GeneratorWorker owns the global indices congruent to its index modulo the
// number of generators and walks them in increasing order.
type GeneratorWorker struct {
	config               *ntypes.NexMarkConfig
	factory              *generator.EntityFactory
	sampler              *delay.Sampler
	delayRandom          *rand.Rand
	maxEvents            uint64
	eventsEmittedLocally uint64
	numGenerators        uint32
	workerIdx            uint32
}

// NewGeneratorWorker builds worker workerIdx. sampler may be nil to disable late events.
func NewGeneratorWorker(gc *generator.GeneratorConfig, workerIdx uint32, sampler *delay.Sampler) (*GeneratorWorker, error) {
	if workerIdx >= gc.Configuration.NumEventGenerators {
		return nil, xerrors.Errorf("worker index %d out of range [0, %d)", workerIdx, gc.Configuration.NumEventGenerators)
	}
	factory, err := generator.NewEntityFactory(gc)
	if err != nil {
		return nil, err
	}
	src := &rand.PCGSource{}
	src.Seed(hashfuncs.SeedFor(uint64(workerIdx)))
	return &GeneratorWorker{
		config:        gc.Configuration,
		factory:       factory,
		sampler:       sampler,
		delayRandom:   rand.New(src),
		maxEvents:     gc.Configuration.EffectiveMaxEvents(),
		numGenerators: gc.Configuration.NumEventGenerators,
		workerIdx:     workerIdx,
	}, nil
}

func (w *GeneratorWorker) WorkerIdx() uint32 {
	return w.workerIdx
}

func (w *GeneratorWorker) EventsEmittedLocally() uint64 {
	return w.eventsEmittedLocally
}

func (w *GeneratorWorker) NextGlobalIndex() uint64 {
	return w.eventsEmittedLocally*uint64(w.numGenerators) + uint64(w.workerIdx)
}

func (w *GeneratorWorker) Done() bool {
	return w.NextGlobalIndex() >= w.maxEvents
}

// ProduceOne materializes the event of the next tick. It reports done once the
// generator has walked all of its indices below the event budget. A late event
// does not move the generator forward.
func (w *GeneratorWorker) ProduceOne() (Produced, bool, error) {
	if w.Done() {
		return Produced{}, true, nil
	}
	next := w.NextGlobalIndex()
	p := Produced{Index: next}
	if w.sampler != nil && w.sampler.ShouldDelay(w.delayRandom, w.eventsEmittedLocally) {
		k := w.sampler.Sample(w.delayRandom)
		p.Index = delay.Shift(next, k, w.numGenerators)
		p.Delayed = true
	} else {
		w.eventsEmittedLocally += 1
	}
	debug.Assert(p.Index%uint64(w.numGenerators) == uint64(w.workerIdx), func() string {
		return fmt.Sprintf("index %d does not belong to worker %d", p.Index, w.workerIdx)
	})
	ev, err := w.factory.NextEvent(p.Index)
	if err != nil {
		return Produced{}, false, err
	}
	p.Event = ev
	p.Skipped = ev == nil
	return p, false, nil
}

type WorkerReport struct {
	WorkerIdx        uint32
	Published        uint64
	Delayed          uint64
	Skipped          uint64
	TransientErrors  uint64
	DeliveryFailures uint64 // accepted by the sink but not delivered
	NextIndex        uint64
	Duration         time.Duration
}

type RunParams struct {
	Sink            sink.Sink
	Router          *sink.Router
	Encoder         commtypes.EncoderG[*ntypes.Event]
	RateController  *ratecontrol.RateController
	Running         *syncutils.AtomicBool
	TransientPolicy TransientPolicy
	ReportEvery     time.Duration
}

// Run emits one event per tick of the rate controller's interval until the event
// budget is reached, the running flag is cleared, ctx is done or the sink fails.
// The sink is flushed before Run returns.
func (w *GeneratorWorker) Run(ctx context.Context, params *RunParams) (WorkerReport, error) {
	report := WorkerReport{WorkerIdx: w.workerIdx}
	start := time.Now()
	counter := stats.NewThroughputCounter(fmt.Sprintf("gen-%d", w.workerIdx), params.ReportEvery)
	err := w.loop(ctx, params, &report, &counter)

	flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if ferr := params.Sink.Flush(flushCtx); ferr != nil {
		log.Error().Err(ferr).Uint32("worker", w.workerIdx).Msg("flush failed")
		if err == nil {
			err = ferr
		}
	}
	// with a batching or asynchronous sink, a nil Publish is not a delivery
	if tracker, ok := params.Sink.(sink.DeliveryTracker); ok {
		report.Published = tracker.Delivered()
		report.DeliveryFailures = tracker.Failed()
		metrics.RecordDeliveryFailures(w.workerIdx, report.DeliveryFailures)
	}
	report.NextIndex = w.NextGlobalIndex()
	report.Duration = time.Since(start)
	return report, err
}

func (w *GeneratorWorker) loop(ctx context.Context, params *RunParams, report *WorkerReport, counter *stats.ThroughputCounter) error {
	interval := params.RateController.CurrentInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	checkEvery := w.config.RateCheckEvery
	ticks := uint32(0)
	for params.Running.Get() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		ticks += 1
		if ticks%checkEvery == 0 {
			if cur := params.RateController.CurrentInterval(); cur != interval {
				interval = cur
				ticker.Reset(interval)
				log.Debug().Uint32("worker", w.workerIdx).Dur("interval", interval).Msg("rate changed")
			}
		}
		p, done, err := w.ProduceOne()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if p.Skipped {
			report.Skipped += 1
			metrics.RecordSkipped(w.workerIdx)
			continue
		}
		encoded, err := params.Encoder.Encode(p.Event)
		if err != nil {
			return xerrors.Errorf("encode event %d: %w", p.Index, err)
		}
		rec := params.Router.Route(w.workerIdx, p.Event, encoded)
		pubStart := time.Now()
		err = params.Sink.Publish(ctx, rec)
		metrics.RecordPublishLatency(time.Since(pubStart))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if common_errors.IsTransient(err) {
				report.TransientErrors += 1
				metrics.RecordSinkError(w.workerIdx, "transient")
				log.Warn().Err(err).Uint32("worker", w.workerIdx).Uint64("index", p.Index).Msg("publish failed")
				if params.TransientPolicy == FAIL {
					return err
				}
				continue
			}
			metrics.RecordSinkError(w.workerIdx, "fatal")
			return xerrors.Errorf("worker %d: %w", w.workerIdx, err)
		}
		report.Published += 1
		if p.Delayed {
			report.Delayed += 1
			metrics.RecordDelayed(w.workerIdx)
		}
		metrics.RecordEmitted(w.workerIdx, p.Event.Etype.String())
		counter.Tick(1)
	}
	return nil
}
