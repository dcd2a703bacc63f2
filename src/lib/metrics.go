package lib

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	bookingsAdmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ota",
			Name:      "bookings_admitted_total",
			Help:      "Bookings admitted by the capacity allocator.",
		},
	)
	bookingsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ota",
			Name:      "bookings_rejected_total",
			Help:      "Bookings rejected, by reason.",
		},
		[]string{"reason"},
	)
	identifierRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ota",
			Name:      "identifier_retries_total",
			Help:      "Identifier allocations retried after a key collision.",
		},
	)
)

// RegisterMetrics registers Prometheus metrics. Safe to call multiple times.
func RegisterMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(bookingsAdmitted, bookingsRejected, identifierRetries)
	})
}

func IncBookingsAdmitted() {
	bookingsAdmitted.Inc()
}

func IncBookingsRejected(reason string) {
	bookingsRejected.WithLabelValues(reason).Inc()
}

func IncIdentifierRetries() {
	identifierRetries.Inc()
}
