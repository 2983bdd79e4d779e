// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	AccountsRegistered *prometheus.CounterVec
	Logins             *prometheus.CounterVec
	ListingsCreated    prometheus.Counter
	ChatCompletions    *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsRegistered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "estate_accounts_registered_total",
			Help: "Total number of accounts created, by role",
		}, []string{"role"}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "estate_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		ListingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "estate_listings_created_total",
			Help: "Total number of listings created",
		}),
		ChatCompletions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "estate_chat_completions_total",
			Help: "Assistant replies by outcome",
		}, []string{"outcome"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "estate_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "estate_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
	}
}

// NewDefault registers the collectors with the default Prometheus registry.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

func (m *Metrics) IncAccountRegistered(role string) {
	if m == nil {
		return
	}
	m.AccountsRegistered.WithLabelValues(role).Inc()
}

func (m *Metrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncListingCreated() {
	if m == nil {
		return
	}
	m.ListingsCreated.Inc()
}

func (m *Metrics) IncChatCompletion(outcome string) {
	if m == nil {
		return
	}
	m.ChatCompletions.WithLabelValues(outcome).Inc()
}

// ObserveHTTPRequest records one served request. Call with time.Now() taken at the start.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
