// Package metrics owns the Prometheus collectors of the service. They live in
// a private registry so tests can build as many instances as they like.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "repairshop"

// Transition results.
const (
	TransitionAccepted = "accepted"
	TransitionRejected = "rejected"
)

type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge

	orderTransitions    *prometheus.CounterVec
	schedulingConflicts *prometheus.CounterVec
	remindersSent       prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request latency in seconds.",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		requestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of requests being served.",
			},
		),
		orderTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "orders",
				Name:      "status_transitions_total",
				Help:      "Requested order status transitions by result.",
			},
			[]string{"result"},
		),
		schedulingConflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "appointments",
				Name:      "scheduling_conflicts_total",
				Help:      "Appointment writes refused because the window was taken.",
			},
			[]string{"operation"},
		),
		remindersSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "appointments",
				Name:      "reminders_sent_total",
				Help:      "Appointments flagged by the reminder job.",
			},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.requestsInFlight,
		m.orderTransitions,
		m.schedulingConflicts,
		m.remindersSent,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished request. route is the matched route
// template, never the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// TrackInFlight increments the in-flight gauge and returns its decrement.
func (m *Metrics) TrackInFlight() func() {
	m.requestsInFlight.Inc()
	return m.requestsInFlight.Dec
}

func (m *Metrics) OrderTransition(result string) {
	m.orderTransitions.WithLabelValues(result).Inc()
}

func (m *Metrics) SchedulingConflict(operation string) {
	m.schedulingConflicts.WithLabelValues(operation).Inc()
}

func (m *Metrics) RemindersSent(n int) {
	m.remindersSent.Add(float64(n))
}

// Reset clears every labelled series. The reminders counter is not labelled
// and keeps its value.
func (m *Metrics) Reset() {
	m.requestsTotal.Reset()
	m.requestDuration.Reset()
	m.orderTransitions.Reset()
	m.schedulingConflicts.Reset()
}
