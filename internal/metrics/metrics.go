package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "prtitle"

const (
	OutcomeProcessed = "processed"
	OutcomeIgnored   = "ignored"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"

	OutcomeConforming = "conforming"
	OutcomeRetitled   = "retitled"
	OutcomeSuccess    = "success"
)

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide on the global one. A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	webhookEvents   *prometheus.CounterVec
	classifications *prometheus.CounterVec
	remediations    *prometheus.CounterVec
	completions     *prometheus.CounterVec
	completionTime  *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		webhookEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_events_total",
				Help:      "Webhook deliveries received, by event kind and outcome",
			},
			[]string{"event", "outcome"},
		),
		classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "title_classifications_total",
				Help:      "Pull request titles classified, by result",
			},
			[]string{"result"},
		),
		remediations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "title_remediations_total",
				Help:      "Title checks completed, by outcome",
			},
			[]string{"outcome"},
		),
		completions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "completion_requests_total",
				Help:      "Title suggestion requests sent to the completion API",
			},
			[]string{"provider", "outcome"},
		),
		completionTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "completion_request_duration_seconds",
				Help:      "Latency of title suggestion requests",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
			},
			[]string{"provider"},
		),
	}
}

func (m *Metrics) WebhookEvent(event, outcome string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(event, outcome).Inc()
}

func (m *Metrics) TitleClassified(conforms bool) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(strconv.FormatBool(conforms)).Inc()
}

func (m *Metrics) Remediation(outcome string) {
	if m == nil {
		return
	}
	m.remediations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CompletionRequest(provider string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailed
	}
	m.completions.WithLabelValues(provider, outcome).Inc()
	m.completionTime.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
