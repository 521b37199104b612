package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Quartermaster
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Webhook / integration metrics
	WebhooksReceivedTotal  prometheus.CounterVec
	DiscordAPICallsTotal   prometheus.CounterVec
	PrizeDeliveriesTotal   prometheus.CounterVec
	RewardQueueDepth       prometheus.Gauge
	PresenceMembersTracked prometheus.GaugeVec
	StaffOnlineCount       prometheus.Gauge
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quartermaster_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quartermaster_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quartermaster_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quartermaster_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quartermaster_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quartermaster_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quartermaster_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Webhook / integration metrics
		WebhooksReceivedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quartermaster_webhooks_received_total",
				Help: "Inbound webhook invocations by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		DiscordAPICallsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quartermaster_discord_api_calls_total",
				Help: "Outbound Discord REST calls by operation and result",
			},
			[]string{"operation", "result"},
		),
		PrizeDeliveriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quartermaster_prize_deliveries_total",
				Help: "Spin prize delivery attempts by outcome (delivered, queued, manual)",
			},
			[]string{"outcome"},
		),
		RewardQueueDepth: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "quartermaster_reward_queue_depth",
				Help: "Number of pending reward messages in the delivery stream",
			},
		),
		PresenceMembersTracked: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quartermaster_presence_members_tracked",
				Help: "Members currently tracked per presence channel kind",
			},
			[]string{"channel_kind"},
		),
		StaffOnlineCount: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "quartermaster_staff_online_count",
				Help: "Staff members currently considered online",
			},
		),
	}
}
