package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rental",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	bookingCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "booking_created_total",
			Help:      "Count of bookings created.",
		},
	)
	availabilityRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "availability_rejected_total",
			Help:      "Count of booking attempts rejected for insufficient stock.",
		},
	)
	statusTransition = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "booking_status_transition_total",
			Help:      "Count of booking status transitions by target status.",
		},
		[]string{"to"},
	)
)

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncAvailabilityRejected() {
	availabilityRejected.Inc()
}

func IncStatusTransition(to string) {
	statusTransition.WithLabelValues(to).Inc()
}

// Middleware records request counts and latencies. Route templates
// (c.FullPath) keep the label cardinality bounded.
func Middleware(c *gin.Context) {
	if c.Request.URL.Path == "/metrics" {
		c.Next()
		return
	}
	start := time.Now()
	c.Next()
	duration := time.Since(start).Seconds()
	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())
	requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	requestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
}
