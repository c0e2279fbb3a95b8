package mymetrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated registry exposed on /metrics
	Registry = prometheus.NewRegistry()

	// CheckoutOutcomes counts terminal outcomes per flow (wallet, redirect) and outcome
	CheckoutOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "checkout_outcomes_total", Help: "Checkout attempts by flow, step and outcome."},
		[]string{"flow", "step", "outcome"},
	)

	// BackendLatency records the duration of calls to the payment backend in seconds
	BackendLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "checkout_backend_call_duration_seconds", Help: "Payment backend call duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"endpoint"},
	)

	// InFlight is the number of checkout steps currently waiting for the backend
	InFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "checkout_steps_in_flight", Help: "Checkout steps currently in progress."},
		[]string{"flow"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(CheckoutOutcomes)
		Registry.MustRegister(BackendLatency)
		Registry.MustRegister(InFlight)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

func Handler() http.Handler {
	RegisterDefault()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
