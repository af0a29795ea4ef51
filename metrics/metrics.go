package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters the oracle engine and ingress dispatcher
// report against. A nil *Metrics is valid and every method on it is a
// no-op, so components never need a guard check before recording.
type Metrics struct {
	EventsInserted      prometheus.Counter
	EventsAttested      prometheus.Counter
	InsertConflicts     prometheus.Counter
	InvariantViolations prometheus.Counter
	IngressDropped      *prometheus.CounterVec
	IngressRetried      *prometheus.CounterVec
	SubscriberDrops     prometheus.Counter
}

// New registers and returns a Metrics instance against reg. A nil reg
// is accepted and simply skips registration, for tests that do not
// care about export.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "olivia_events_inserted_total",
			Help: "Events successfully announced.",
		}),
		EventsAttested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "olivia_events_attested_total",
			Help: "Events successfully attested.",
		}),
		InsertConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "olivia_insert_conflicts_total",
			Help: "insert_event calls rejected for an existing, differently-announced id.",
		}),
		InvariantViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "olivia_invariant_violations_total",
			Help: "Attempts to set a second, distinct attestation for an event.",
		}),
		IngressDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olivia_ingress_dropped_total",
			Help: "Ingress records dropped after a permanent error, by source.",
		}, []string{"source"}),
		IngressRetried: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olivia_ingress_retried_total",
			Help: "Ingress records retried after a transient error, by source.",
		}, []string{"source"}),
		SubscriberDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "olivia_observer_subscriber_drops_total",
			Help: "Observer notifications dropped because a subscriber's channel was full.",
		}),
	}
	if reg == nil {
		return m
	}
	for _, c := range []prometheus.Collector{
		m.EventsInserted, m.EventsAttested, m.InsertConflicts,
		m.InvariantViolations, m.IngressDropped, m.IngressRetried, m.SubscriberDrops,
	} {
		_ = reg.Register(c)
	}
	return m
}

// IncEventsInserted records a successful insert_event.
func (m *Metrics) IncEventsInserted() {
	if m == nil {
		return
	}
	m.EventsInserted.Inc()
}

// IncEventsAttested records a successful complete_event.
func (m *Metrics) IncEventsAttested() {
	if m == nil {
		return
	}
	m.EventsAttested.Inc()
}

// IncInsertConflicts records an insert_event rejected by a divergent announcement.
func (m *Metrics) IncInsertConflicts() {
	if m == nil {
		return
	}
	m.InsertConflicts.Inc()
}

// IncInvariantViolations records a refused second, distinct attestation.
func (m *Metrics) IncInvariantViolations() {
	if m == nil {
		return
	}
	m.InvariantViolations.Inc()
}

// IncIngressDropped records a permanently-dropped record for source.
func (m *Metrics) IncIngressDropped(source string) {
	if m == nil {
		return
	}
	m.IngressDropped.WithLabelValues(source).Inc()
}

// IncIngressRetried records a retried record for source.
func (m *Metrics) IncIngressRetried(source string) {
	if m == nil {
		return
	}
	m.IngressRetried.WithLabelValues(source).Inc()
}

// IncSubscriberDrops records a best-effort observer drop.
func (m *Metrics) IncSubscriberDrops() {
	if m == nil {
		return
	}
	m.SubscriberDrops.Inc()
}
