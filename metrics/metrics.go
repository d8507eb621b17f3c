package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rentbot"

var (
	// Payment state machine
	PaymentMarkCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_marks_total",
			Help:      "Total payment status transitions applied, by mark",
		},
		[]string{"mark"},
	)

	// Premium lifecycle
	PremiumActivationCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "premium_activations_total",
		Help:      "Total premium activations (direct and approved requests)",
	})
	PremiumRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "premium_requests_total",
			Help:      "Premium requests processed, by outcome",
		},
		[]string{"outcome"},
	)

	// Scanner
	ScanRunCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_runs_total",
			Help:      "Scanner passes executed, by kind",
		},
		[]string{"kind"},
	)
	NotificationsSentCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Notifications dispatched to landlord chats, by kind",
		},
		[]string{"kind"},
	)
	NotificationFailureCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Notification deliveries that failed (best-effort, never retried)",
	})
)
