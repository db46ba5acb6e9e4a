// Package metrics owns the Prometheus registry and the collectors exported
// by solarsizer.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solarsizer"

// Webhook call results.
const (
	ResultSuccess = "success"
	ResultHTTP    = "http_error"
	ResultNetwork = "network_error"
)

var (
	registerOnce sync.Once
	registry     = prometheus.NewRegistry()

	calculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Sizing calculations by outcome (matched, fallback, none, invalid).",
		},
		[]string{"outcome"},
	)

	webhookRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_requests_total",
			Help:      "Outbound webhook calls by hook and result.",
		},
		[]string{"hook", "result"},
	)

	webhookLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "webhook_request_duration_seconds",
			Help:      "Outbound webhook latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"hook"},
	)
)

// Init registers the collectors. It is safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			calculationsTotal,
			webhookRequests,
			webhookLatency,
			httpRequests,
			httpLatency,
		)
	})
}

// Registry returns the registry, registering collectors on first use.
func Registry() *prometheus.Registry {
	Init()
	return registry
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

// ObserveCalculation counts one calculation.
func ObserveCalculation(outcome string) {
	calculationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveWebhook records one outbound webhook call.
func ObserveWebhook(hook, result string, elapsed time.Duration) {
	webhookRequests.WithLabelValues(hook, result).Inc()
	webhookLatency.WithLabelValues(hook).Observe(elapsed.Seconds())
}

// CalculationCount returns the current counter value for an outcome.
func CalculationCount(outcome string) float64 {
	return counterValue(calculationsTotal.WithLabelValues(outcome))
}

// WebhookCount returns the current counter value for a hook and result.
func WebhookCount(hook, result string) float64 {
	return counterValue(webhookRequests.WithLabelValues(hook, result))
}
