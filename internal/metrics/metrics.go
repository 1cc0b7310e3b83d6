// Package metrics declares the Prometheus instruments exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kostscope",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests served",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kostscope",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Dashboard gauges, refreshed on each overview computation
	ClustersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "kostscope",
		Name:      "clusters_total",
		Help:      "Number of tracked clusters",
	})

	NodesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "kostscope",
		Name:      "nodes_total",
		Help:      "Number of nodes across all clusters",
	})

	MonthlyCostUSD = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "kostscope",
		Name:      "monthly_cost_usd",
		Help:      "Total monthly cost across all clusters in USD",
	})

	PotentialSavingsUSD = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "kostscope",
		Name:      "potential_savings_usd",
		Help:      "Estimated potential monthly savings in USD",
	})

	// Insight service metrics
	InsightRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kostscope",
		Name:      "insight_requests_total",
		Help:      "Total completion-API requests by the insight service",
	}, []string{"kind", "result"}) // kind: "analysis", "recommendations"; result: "ok", "error", "fallback"

	InsightLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "kostscope",
		Name:      "insight_latency_seconds",
		Help:      "Completion-API request latency",
		Buckets:   prometheus.DefBuckets,
	})

	// Alert metrics
	AlertsResolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kostscope",
		Name:      "alerts_resolved_total",
		Help:      "Total alerts marked resolved via the API",
	})
)
