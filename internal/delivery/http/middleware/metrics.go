package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"talkschedule/internal/delivery/http/helpers"
)

const bookingRoute = "POST /api/talks"

// Metrics collects Prometheus metrics for HTTP requests and talk bookings.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
	bookings *prometheus.CounterVec
}

// NewMetrics registers the HTTP collectors on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talkschedule_http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "talkschedule_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "talkschedule_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talkschedule_bookings_total",
				Help: "Booking attempts by outcome (booked, conflict, rejected, error)",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.inFlight, m.bookings)
	return m
}

// Middleware records request count, duration and in-flight requests labelled by route
// pattern. It must wrap the ServeMux directly so r.Pattern is set after the call.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		wrapped := record(w)
		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		if route == bookingRoute {
			m.bookings.WithLabelValues(bookingResult(wrapped.status, wrapped.errCode)).Inc()
		}
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func bookingResult(status int, errCode string) string {
	switch {
	case status == http.StatusCreated:
		return "booked"
	case errCode == helpers.ErrCodeSlotUnavailable:
		return "conflict"
	case status >= 400 && status < 500:
		return "rejected"
	default:
		return "error"
	}
}
