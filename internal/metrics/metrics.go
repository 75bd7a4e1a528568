package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitclub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RoomBookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_room_bookings_total",
			Help: "Total number of room booking attempts",
		},
		[]string{"outcome"},
	)

	ClassRegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_class_registrations_total",
			Help: "Total number of class registration attempts",
		},
		[]string{"outcome"},
	)

	TrainingSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_training_sessions_total",
			Help: "Total number of personal training session booking attempts",
		},
		[]string{"outcome"},
	)

	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_cancellations_total",
			Help: "Total number of cancellations by record kind",
		},
		[]string{"kind"},
	)

	ClassesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitclub_classes_created_total",
			Help: "Total number of fitness classes created",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitclub_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

// Outcome labels for booking counters.
const (
	OutcomeBooked   = "booked"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordRoomBooking(outcome string) {
	RoomBookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordClassRegistration(outcome string) {
	ClassRegistrationsTotal.WithLabelValues(outcome).Inc()
}

func RecordTrainingSession(outcome string) {
	TrainingSessionsTotal.WithLabelValues(outcome).Inc()
}

func RecordCancellation(kind string) {
	CancellationsTotal.WithLabelValues(kind).Inc()
}

func RecordClassCreated() {
	ClassesCreatedTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
