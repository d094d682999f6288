package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request processing time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	busSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bus_active_subscribers",
			Help: "Number of live event bus subscribers across all rooms",
		},
	)

	busDroppedEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bus_dropped_events_total",
			Help: "Events dropped because a subscriber buffer was full",
		},
	)

	roomsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rooms_expired_total",
			Help: "Rooms deleted by the TTL expiry sweep",
		},
	)
)

// RecordHTTPMetrics records one handled HTTP request.
func RecordHTTPMetrics(method, endpoint string, status int, duration time.Duration) {
	strStatus := strconv.Itoa(status)

	httpRequestsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, strStatus).Observe(duration.Seconds())
}

func IncrementSubscribers() {
	busSubscribers.Inc()
}

func DecrementSubscribers() {
	busSubscribers.Dec()
}

func IncrementDroppedEvents() {
	busDroppedEvents.Inc()
}

func IncrementExpiredRooms() {
	roomsExpired.Inc()
}
