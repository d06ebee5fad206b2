package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtslot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtslot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtslot_reservations_total",
			Help: "Total number of reservations created",
		},
		[]string{"origin"},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtslot_reservation_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	SlotConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtslot_slot_conflicts_total",
			Help: "Total number of reservation attempts rejected because the slot was taken",
		},
	)

	BatchReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtslot_batch_reservations_total",
			Help: "Total number of slots processed by tournament batch requests",
		},
		[]string{"outcome"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtslot_payments_total",
			Help: "Total number of processed payments",
		},
		[]string{"status"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtslot_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "courtslot_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(origin string) {
	ReservationsTotal.WithLabelValues(origin).Inc()
}

func RecordReservationCancellation() {
	ReservationCancellationsTotal.Inc()
}

func RecordSlotConflict() {
	SlotConflictsTotal.Inc()
}

func RecordBatchOutcome(outcome string) {
	BatchReservationsTotal.WithLabelValues(outcome).Inc()
}

func RecordPayment(status string) {
	PaymentsTotal.WithLabelValues(status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(length int64) {
	EmailQueueLength.Set(float64(length))
}
