package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mailtickets"

// Metrics groups the service counters. A nil *Metrics records nothing.
type Metrics struct {
	ingestOutcomes     *prometheus.CounterVec
	attachmentsStored  prometheus.Counter
	attachmentsDropped *prometheus.CounterVec
	notifications      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ingestOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbound_emails_total",
			Help:      "Inbound emails by ingestion outcome",
		}, []string{"outcome"}),
		attachmentsStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attachments_stored_total",
			Help:      "Attachments stored on tickets",
		}),
		attachmentsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attachments_dropped_total",
			Help:      "Inbound attachments rejected, by reason",
		}, []string{"reason"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Customer notifications by result",
		}, []string{"result"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IngestOutcome(outcome string) {
	if m == nil {
		return
	}
	m.ingestOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AttachmentStored() {
	if m == nil {
		return
	}
	m.attachmentsStored.Inc()
}

func (m *Metrics) AttachmentDropped(reason string) {
	if m == nil {
		return
	}
	m.attachmentsDropped.WithLabelValues(reason).Inc()
}

func (m *Metrics) Notification(sent bool) {
	if m == nil {
		return
	}
	result := "sent"
	if !sent {
		result = "failed"
	}
	m.notifications.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
