package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	HTTPInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "salon",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	AppointmentTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "appointment_transitions_total",
			Help:      "Appointment state changes by resulting status.",
		},
		[]string{"status"},
	)

	Checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "commerce",
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		},
		[]string{"outcome"},
	)

	LoyaltyPoints = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "loyalty",
			Name:      "points_total",
			Help:      "Loyalty points moved, by direction.",
		},
		[]string{"direction"},
	)

	LoginThrottled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "auth",
			Name:      "login_throttled_total",
			Help:      "Login attempts rejected by the throttle.",
		},
	)
)

func init() {
	Registry.MustRegister(
		HTTPInFlight,
		HTTPRequests,
		HTTPDuration,
		AppointmentTransitions,
		Checkouts,
		LoyaltyPoints,
		LoginThrottled,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func PointsAwarded(n int64) {
	if n > 0 {
		LoyaltyPoints.WithLabelValues("awarded").Add(float64(n))
	}
}

func PointsRedeemed(n int64) {
	if n > 0 {
		LoyaltyPoints.WithLabelValues("redeemed").Add(float64(n))
	}
}
