package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flow.
type BookingMetrics struct {
	stepTotal       *prometheus.CounterVec
	providerTotal   *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	checkoutLinks   prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		stepTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "silverfox",
			Subsystem: "widget",
			Name:      "step_transitions_total",
			Help:      "Total widget step transitions by resulting step",
		}, []string{"step"}),
		providerTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "silverfox",
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Total Square API requests",
		}, []string{"operation", "status"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "silverfox",
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Latency of Square API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		checkoutLinks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "silverfox",
			Subsystem: "checkout",
			Name:      "links_created_total",
			Help:      "Total hosted checkout links created",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.stepTotal, m.providerTotal, m.providerLatency, m.checkoutLinks)
	return m
}

// ObserveStep records a transition landing on the given step.
func (m *BookingMetrics) ObserveStep(step string) {
	if m == nil {
		return
	}
	m.stepTotal.WithLabelValues(step).Inc()
}

// ObserveProviderRequest records one Square call by operation and outcome.
func (m *BookingMetrics) ObserveProviderRequest(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.providerTotal.WithLabelValues(operation, status).Inc()
	m.providerLatency.WithLabelValues(operation).Observe(seconds)
}

// ObserveCheckoutLink records one successfully created payment link.
func (m *BookingMetrics) ObserveCheckoutLink() {
	if m == nil {
		return
	}
	m.checkoutLinks.Inc()
}
