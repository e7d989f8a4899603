package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Engine metric names
const (
	MetricNameCascadesTotal        = "propagation_cascades_total"
	MetricNameCascadeFailures      = "propagation_cascade_failures_total"
	MetricNameBetsRescored         = "bets_rescored_total"
	MetricNameStatisticsRecomputed = "statistics_recomputed_total"
	MetricNameBetsPlaced           = "bets_placed_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Engine metric help text
const (
	HelpTextCascadesTotal        = "Total number of propagation cascades run"
	HelpTextCascadeFailures      = "Total number of propagation cascades that aborted"
	HelpTextBetsRescored         = "Total number of bets rescored by the engine"
	HelpTextStatisticsRecomputed = "Total number of user statistics recomputations"
	HelpTextBetsPlaced           = "Total number of bets placed or updated"
)

// Metric labels
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelTrigger = "trigger"
)

// HTTPLatencyBuckets are the histogram buckets for request durations
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
