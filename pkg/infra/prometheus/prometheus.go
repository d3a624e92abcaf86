package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds. Static stages finish in
	// microseconds; the classifier call dominates the tail.
	latencyBuckets = []float64{
		1, 2, 5,
		10, 25, 50,
		100, 250, 500,
		1000, 2500, 5000,
	}

	RequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "textsentry_requests_total",
			Help: "Total number of API requests processed",
		},
		[]string{"endpoint", "status"},
	)

	StageLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "textsentry_stage_latency_ms",
			Help:    "Pipeline stage latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"stage"},
	)

	StageFailures = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "textsentry_stage_failures_total",
			Help: "Pipeline stage failures by reason",
		},
		[]string{"stage", "reason"},
	)

	ToxicVerdicts = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "textsentry_verdicts_total",
			Help: "Final detection verdicts",
		},
		[]string{"verdict"},
	)

	CacheEvents = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "textsentry_cache_events_total",
			Help: "Result cache hits and misses",
		},
		[]string{"result"},
	)
)

func init() {
	registerer.MustRegister(collectors.NewGoCollector())
	registerer.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Registry exposes the metric registry for the metrics endpoint.
func Registry() *prometheus.Registry {
	return registry
}
