package telemetry

// SLI metric names used for instrumentation.
const (
	// Latency
	MetricAPILatencyP50 = "api.latency.p50"
	MetricAPILatencyP95 = "api.latency.p95"
	MetricAPILatencyP99 = "api.latency.p99"

	// Throughput
	MetricRequestsPerSec = "api.requests_per_second"

	// Data freshness
	MetricCatalogFreshness = "catalog.data_age_seconds"
	MetricStatusLatency    = "statuswatch.transition_latency"

	// Availability
	MetricUptime = "service.uptime_percentage"

	// Business
	MetricSearches = "business.searches_served"
	MetricRewards  = "business.rewards_issued"
)
