package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chatrelay"

// Chat outcomes.
const (
	OutcomeEmpty = "empty"
	OutcomeReply = "reply"
	OutcomeError = "error"
)

// Collector owns the relay's Prometheus registry.
//
// Metrics:
//   - chatrelay_chat_requests_total: chat requests by outcome
//   - chatrelay_reply_shape_total: decoded provider reply shapes
//   - chatrelay_provider_duration_seconds: provider call latency
type Collector struct {
	registry *prometheus.Registry

	chatRequests     *prometheus.CounterVec
	replyShapes      *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
}

// NewCollector registers all metrics on a fresh registry, so tests can build
// as many collectors as they like.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		chatRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_requests_total",
				Help:      "Total number of chat requests by outcome",
			},
			[]string{"outcome"},
		),
		replyShapes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reply_shape_total",
				Help:      "Provider replies by the field the text was taken from",
			},
			[]string{"shape"},
		),
		providerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_duration_seconds",
				Help:      "Duration of provider calls in seconds",
				// LLM latencies, 100ms to 30s
				Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"provider"},
		),
	}

	c.registry.MustRegister(c.chatRequests, c.replyShapes, c.providerDuration)
	return c
}

func (c *Collector) RecordChat(outcome string) {
	c.chatRequests.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordReplyShape(shape string) {
	c.replyShapes.WithLabelValues(shape).Inc()
}

func (c *Collector) ObserveProvider(provider string, d time.Duration) {
	c.providerDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// Registry exposes the underlying registry for tests and extra collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
