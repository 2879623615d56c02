package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the daemon's counters on a dedicated registry. The gap
// between SignalsTotal and WakeupsTotal is the number of coalesced signals.
type Metrics struct {
	registry *prometheus.Registry

	TransitionsTotal   *prometheus.CounterVec
	InvalidEventsTotal *prometheus.CounterVec
	SignalsTotal       prometheus.Counter
	WakeupsTotal       prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		TransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callstate",
			Name:      "transitions_total",
			Help:      "Completed call state transitions.",
		}, []string{"from", "to", "event"}),
		InvalidEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callstate",
			Name:      "invalid_events_total",
			Help:      "Events dropped because they are not valid in the current state.",
		}, []string{"state", "event"}),
		SignalsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "callstate",
			Name:      "producer_signals_total",
			Help:      "Signals sent by the producer.",
		}),
		WakeupsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "callstate",
			Name:      "consumer_wakeups_total",
			Help:      "Times the consumer woke up to process an event.",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
