// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InquirySubmissions counts accepted inquiry submissions by intake variant.
	InquirySubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tpecflowers_inquiry_submissions_total",
		Help: "Total number of accepted inquiry submissions by intake variant",
	}, []string{"variant"})

	// InquiryStatusTransitions counts operator status changes by target status.
	InquiryStatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tpecflowers_inquiry_status_transitions_total",
		Help: "Total number of inquiry status transitions by target status",
	}, []string{"status"})

	// NotificationFailures counts inquiry notification deliveries that failed.
	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tpecflowers_notification_failures_total",
		Help: "Total number of failed inquiry notification deliveries",
	})

	// ActiveWebSockets tracks currently connected dashboard sessions.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tpecflowers_active_websockets",
		Help: "Number of currently connected websocket clients",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client
	// send buffer was full or closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tpecflowers_websocket_backpressure_drops_total",
		Help: "Total number of websocket messages dropped due to backpressure",
	}, []string{"reason"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tpecflowers_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
