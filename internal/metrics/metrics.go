package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Engine Metrics
var (
	CascadesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCascadesTotal,
			Help: HelpTextCascadesTotal,
		},
		[]string{LabelTrigger},
	)

	CascadeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCascadeFailures,
			Help: HelpTextCascadeFailures,
		},
		[]string{LabelTrigger},
	)

	BetsRescored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBetsRescored,
			Help: HelpTextBetsRescored,
		},
	)

	StatisticsRecomputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStatisticsRecomputed,
			Help: HelpTextStatisticsRecomputed,
		},
	)

	BetsPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBetsPlaced,
			Help: HelpTextBetsPlaced,
		},
	)
)
