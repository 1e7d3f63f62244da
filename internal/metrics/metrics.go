// Package metrics exposes storefront counters on a private prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Storefront records the client-side commerce events. A nil *Storefront is a
// valid no-op recorder.
type Storefront struct {
	registry      *prometheus.Registry
	cartMutations *prometheus.CounterVec
	ordersCreated prometheus.Counter
	payments      *prometheus.CounterVec
	apiFailures   *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func New() *Storefront {
	reg := prometheus.NewRegistry()
	m := &Storefront{
		registry: reg,
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations by operation.",
		}, []string{"op"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Orders accepted by the commerce API.",
		}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_payments_completed_total",
			Help: "Simulated payments completed by method.",
		}, []string{"method"}),
		apiFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_commerce_api_failures_total",
			Help: "Commerce API calls that failed with a transport or server error.",
		}, []string{"op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Requests served by the storefront host.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Latency of requests served by the storefront host.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.cartMutations, m.ordersCreated, m.payments, m.apiFailures, m.httpRequests, m.httpDuration)
	return m
}

func (m *Storefront) CartMutation(op string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func (m *Storefront) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *Storefront) PaymentCompleted(method string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(normalizeLabel(method)).Inc()
}

// APIFailure matches commerceapi.WithFailureHook.
func (m *Storefront) APIFailure(op string) {
	if m == nil {
		return
	}
	m.apiFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

func (m *Storefront) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	route = normalizeLabel(route)
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus text format.
func (m *Storefront) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
