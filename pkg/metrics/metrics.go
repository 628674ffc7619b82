package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const MetricsPrefix = "nexmark_gen_"

var eventsEmittedCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: MetricsPrefix + "events_emitted",
		Help: "Number of events handed to the sink",
	},
	[]string{"worker", "etype"},
)

var eventsDelayedCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: MetricsPrefix + "events_delayed",
		Help: "Number of events emitted from a generator's past",
	},
	[]string{"worker"},
)

var eventsSkippedCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: MetricsPrefix + "events_skipped",
		Help: "Number of indices whose event type is filtered out",
	},
	[]string{"worker"},
)

var sinkErrorsCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: MetricsPrefix + "sink_errors",
		Help: "Number of failed publishes",
	},
	[]string{"worker", "kind"},
)

var publishLatencyHist = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    MetricsPrefix + "publish_latency_ms",
		Help:    "Time taken in milliseconds by one sink publish",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 50, 100, 1000},
	},
)

var targetQPSGauge = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: MetricsPrefix + "target_qps",
		Help: "Aggregate event rate the generators are paced to",
	},
)

func workerLabel(workerIdx uint32) string {
	return strconv.FormatUint(uint64(workerIdx), 10)
}

func RecordEmitted(workerIdx uint32, etype string) {
	eventsEmittedCounter.With(prometheus.Labels{"worker": workerLabel(workerIdx), "etype": etype}).Inc()
}

func RecordDelayed(workerIdx uint32) {
	eventsDelayedCounter.With(prometheus.Labels{"worker": workerLabel(workerIdx)}).Inc()
}

func RecordSkipped(workerIdx uint32) {
	eventsSkippedCounter.With(prometheus.Labels{"worker": workerLabel(workerIdx)}).Inc()
}

func RecordSinkError(workerIdx uint32, kind string) {
	sinkErrorsCounter.With(prometheus.Labels{"worker": workerLabel(workerIdx), "kind": kind}).Inc()
}

// RecordDeliveryFailures counts records the sink accepted but the broker never acknowledged.
func RecordDeliveryFailures(workerIdx uint32, n uint64) {
	if n == 0 {
		return
	}
	sinkErrorsCounter.With(prometheus.Labels{"worker": workerLabel(workerIdx), "kind": "delivery"}).Add(float64(n))
}

func RecordPublishLatency(duration time.Duration) {
	publishLatencyHist.Observe(float64(duration.Microseconds()) / 1000.0)
}

func SetTargetQPS(qps uint64) {
	targetQPSGauge.Set(float64(qps))
}
